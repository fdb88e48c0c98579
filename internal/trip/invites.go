package trip

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"backend-vietrip/internal/db"
	"backend-vietrip/internal/stream"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const inviteCodeLen = 8

var newInviteCodeFn = func() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:inviteCodeLen]
}

// GenerateInvite hands the owner an invite code. A live code is reused;
// otherwise a fresh one replaces it.
func (s *Service) GenerateInvite(ctx context.Context, tripID, userID string) (Invite, error) {
	var (
		ownerID   string
		code      *string
		expiresAt *time.Time
	)
	err := s.db.QueryRow(ctx, `
		SELECT owner_id, invite_code, invite_expires_at FROM trips WHERE id=$1
	`, tripID).Scan(&ownerID, &code, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Invite{}, ErrNotFound
	}
	if err != nil {
		return Invite{}, err
	}
	if ownerID != userID {
		return Invite{}, ErrForbidden
	}

	now := s.now()
	if code != nil && expiresAt != nil && expiresAt.After(now) {
		return Invite{Code: *code, ExpiresAt: *expiresAt}, nil
	}

	invite := Invite{ExpiresAt: now.Add(s.inviteTTL)}
	for attempt := 0; attempt < 3; attempt++ {
		invite.Code = newInviteCodeFn()
		_, err = s.db.Exec(ctx, `
			UPDATE trips SET invite_code=$2, invite_expires_at=$3 WHERE id=$1
		`, tripID, invite.Code, invite.ExpiresAt)
		if err == nil {
			s.publish(ctx, stream.TableTrips, stream.OpUpdate, map[string]string{"id": tripID, "owner_id": ownerID})
			return invite, nil
		}
		if !db.IsUniqueViolation(err) {
			return Invite{}, err
		}
	}
	return Invite{}, fmt.Errorf("generate invite code: %w", err)
}

// PreviewInvite describes the trip behind a code without granting access.
func (s *Service) PreviewInvite(ctx context.Context, code string) (Preview, error) {
	var p Preview
	err := s.db.QueryRow(ctx, `
		SELECT t.id, t.name, t.start_date, t.end_date, t.city_ids, t.notes,
			p.username, p.display_name,
			(SELECT COUNT(*) FROM trip_members m WHERE m.trip_id = t.id)
		FROM trips t
		JOIN profiles p ON p.id = t.owner_id
		WHERE t.invite_code=$1 AND t.invite_expires_at > $2
	`, normalizeCode(code), s.now()).Scan(&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.CityIDs, &p.Notes,
		&p.Owner.Username, &p.Owner.DisplayName, &p.MemberCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return Preview{}, ErrInviteInvalid
	}
	if err != nil {
		return Preview{}, err
	}
	return p, nil
}

// JoinByInvite adds the user as a member and returns the trip id. Joining a
// trip twice is not an error.
func (s *Service) JoinByInvite(ctx context.Context, code, userID string) (string, error) {
	var tripID string
	err := s.db.QueryRow(ctx, `
		SELECT id FROM trips WHERE invite_code=$1 AND invite_expires_at > $2
	`, normalizeCode(code), s.now()).Scan(&tripID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrInviteInvalid
	}
	if err != nil {
		return "", err
	}

	tag, err := s.db.Exec(ctx, `
		INSERT INTO trip_members (trip_id, user_id, role)
		VALUES ($1,$2,$3)
		ON CONFLICT (trip_id, user_id) DO NOTHING
	`, tripID, userID, RoleMember)
	if err != nil {
		return "", err
	}
	if tag.RowsAffected() > 0 {
		s.publish(ctx, stream.TableTripMembers, stream.OpInsert, map[string]string{"trip_id": tripID, "user_id": userID})
		// member lists filter trips by membership
		s.publish(ctx, stream.TableTrips, stream.OpUpdate, map[string]string{"id": tripID})
	}
	return tripID, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
