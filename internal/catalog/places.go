package catalog

type Place struct {
	ID                string   `json:"id"`
	CityID            string   `json:"city_id"`
	Name              string   `json:"name"`
	Category          Category `json:"category"`
	Description       string   `json:"description"`
	Address           string   `json:"address"`
	Rating            float64  `json:"rating"`
	PriceLevel        int      `json:"price_level"`
	RecommendedDishes []string `json:"recommended_dishes"`
	coords            Coordinates
}

func place(id, city, name string, cat Category, desc, addr string, rating float64, price int, lat, lng float64, dishes ...string) Place {
	if dishes == nil {
		dishes = []string{}
	}
	return Place{
		ID:                id,
		CityID:            city,
		Name:              name,
		Category:          cat,
		Description:       desc,
		Address:           addr,
		Rating:            rating,
		PriceLevel:        price,
		RecommendedDishes: dishes,
		coords:            Coordinates{Lat: lat, Lng: lng},
	}
}

var places = []Place{
	place("hn01", "hanoi", "Hoàn Kiếm Lake", Landmark, "The heart of the capital, with the red Thê Húc bridge leading to Ngọc Sơn Temple.", "Hoàn Kiếm District, Hà Nội", 4.7, 1, 21.0288, 105.8525),
	place("hn02", "hanoi", "Temple of Literature", Temple, "Vietnam's first national university, founded in 1070 and dedicated to Confucius.", "58 Quốc Tử Giám, Đống Đa, Hà Nội", 4.6, 1, 21.0275, 105.8355),
	place("hn03", "hanoi", "Hồ Chí Minh Mausoleum", Landmark, "The granite resting place of the country's founding leader on Ba Đình Square.", "2 Hùng Vương, Ba Đình, Hà Nội", 4.5, 1, 21.0369, 105.8353),
	place("hn04", "hanoi", "Old Quarter", Landmark, "Thirty-six guild streets packed with shophouses, street food stalls and motorbikes.", "Hoàn Kiếm District, Hà Nội", 4.6, 1, 21.0338, 105.8522),
	place("hn05", "hanoi", "One Pillar Pagoda", Temple, "An 11th-century pagoda rising from a single stone pillar in a lotus pond.", "Chùa Một Cột, Ba Đình, Hà Nội", 4.3, 1, 21.0359, 105.8338),
	place("hn06", "hanoi", "Bún Chả Hương Liên", Restaurant, "The bún chả shop made famous by a presidential visit.", "24 Lê Văn Hưu, Hai Bà Trưng, Hà Nội", 4.4, 1, 21.0132, 105.8567, "Bún chả", "Nem cua bể", "Obama combo"),
	place("hn07", "hanoi", "Phở Thìn Lò Đúc", Restaurant, "A decades-old phở bò institution known for its stir-fried beef broth.", "13 Lò Đúc, Hai Bà Trưng, Hà Nội", 4.5, 1, 21.0152, 105.8601, "Phở tái lăn", "Quẩy"),
	place("hn08", "hanoi", "Đông Xuân Market", Market, "The city's largest covered market, selling fabrics, produce and street snacks.", "Đồng Xuân, Hoàn Kiếm, Hà Nội", 4.1, 1, 21.0387, 105.8499),
	place("hn09", "hanoi", "Hanoi Opera House", Landmark, "A 1911 French colonial opera house modelled on the Palais Garnier.", "1 Tràng Tiền, Hoàn Kiếm, Hà Nội", 4.6, 2, 21.0245, 105.8577),
	place("hn10", "hanoi", "West Lake", Nature, "The largest lake in Hà Nội, ringed by cafés, temples and cycling paths.", "Tây Hồ District, Hà Nội", 4.5, 1, 21.0536, 105.8236),
	place("hn11", "hanoi", "Café Giảng", Cafe, "The birthplace of egg coffee, served in a narrow upstairs room since 1946.", "39 Nguyễn Hữu Huân, Hoàn Kiếm, Hà Nội", 4.6, 1, 21.0341, 105.8518, "Cà phê trứng", "Cacao trứng"),
	place("hn12", "hanoi", "Vietnam Museum of Ethnology", Museum, "Houses and artefacts from all 54 ethnic groups of Vietnam.", "Nguyễn Văn Huyên, Cầu Giấy, Hà Nội", 4.7, 1, 21.0404, 105.7982),

	place("dn01", "danang", "Bà Nà Hills & Golden Bridge", Landmark, "A hilltop resort reached by cable car, home to the bridge held by giant stone hands.", "Hòa Ninh, Hòa Vang, Đà Nẵng", 4.5, 3, 15.9977, 107.9882),
	place("dn02", "danang", "Dragon Bridge", Landmark, "A steel dragon spanning the Hàn River that breathes fire on weekend nights.", "Nguyễn Văn Linh, Hải Châu, Đà Nẵng", 4.6, 1, 16.0611, 108.2277),
	place("dn03", "danang", "Marble Mountains", Nature, "Five limestone hills riddled with caves, shrines and panoramic lookouts.", "Hòa Hải, Ngũ Hành Sơn, Đà Nẵng", 4.5, 1, 16.0034, 108.2631),
	place("dn04", "danang", "Mỹ Khê Beach", Beach, "A long stretch of fine white sand right on the city's doorstep.", "Võ Nguyên Giáp, Sơn Trà, Đà Nẵng", 4.6, 1, 16.0574, 108.2467),
	place("dn05", "danang", "Hàn Market", Market, "A two-storey riverside market for dried seafood, coffee and souvenirs.", "119 Trần Phú, Hải Châu, Đà Nẵng", 4.0, 1, 16.068, 108.2241),
	place("dn06", "danang", "Linh Ứng Pagoda", Temple, "A hillside pagoda with a 67-metre Lady Buddha overlooking the bay.", "Hoàng Sa, Sơn Trà, Đà Nẵng", 4.7, 1, 16.1003, 108.2777),
	place("dn07", "danang", "Sơn Trà Peninsula", Nature, "Jungle-covered mountain roads, secluded coves and red-shanked douc langurs.", "Sơn Trà District, Đà Nẵng", 4.6, 1, 16.1162, 108.2775),
	place("dn08", "danang", "Bê Thui Quán Trần", Restaurant, "Roast veal rolled with rice paper and herbs, a central Vietnam favourite.", "4 Lê Duẩn, Hải Châu, Đà Nẵng", 4.3, 2, 16.0679, 108.2114, "Bê thui", "Bánh tráng cuốn thịt heo"),
	place("dn09", "danang", "Mì Quảng Bà Mua", Restaurant, "A local chain serving turmeric noodles with shrimp, pork and crackers.", "19 Trần Bình Trọng, Hải Châu, Đà Nẵng", 4.3, 1, 16.0664, 108.2153, "Mì Quảng tôm thịt", "Mì Quảng gà"),
	place("dn10", "danang", "Asia Park", Nightlife, "A riverside amusement park lit up at night under the Sun Wheel.", "1 Phan Đăng Lưu, Hải Châu, Đà Nẵng", 4.2, 2, 16.0393, 108.2277),

	place("sg01", "hcmc", "Bến Thành Market", Market, "The clock-towered market that has anchored District 1 since 1914.", "Lê Lợi, District 1, Hồ Chí Minh City", 4.1, 1, 10.7725, 106.698),
	place("sg02", "hcmc", "Notre-Dame Cathedral", Landmark, "A red-brick cathedral built with materials shipped from Marseille.", "1 Công xã Paris, District 1, Hồ Chí Minh City", 4.5, 1, 10.7798, 106.699),
	place("sg03", "hcmc", "War Remnants Museum", Museum, "A sobering collection documenting the war and its aftermath.", "28 Võ Văn Tần, District 3, Hồ Chí Minh City", 4.6, 1, 10.7795, 106.6922),
	place("sg04", "hcmc", "Independence Palace", Landmark, "The 1960s presidential palace preserved as it stood in April 1975.", "135 Nam Kỳ Khởi Nghĩa, District 1, Hồ Chí Minh City", 4.4, 1, 10.7769, 106.6955),
	place("sg05", "hcmc", "Bùi Viện Walking Street", Nightlife, "The backpacker strip of bars, street food and all-night music.", "Bùi Viện, District 1, Hồ Chí Minh City", 4.2, 2, 10.7678, 106.6935),
	place("sg06", "hcmc", "Jade Emperor Pagoda", Temple, "A smoky Taoist pagoda filled with carved deities and turtle ponds.", "73 Mai Thị Lựu, District 1, Hồ Chí Minh City", 4.5, 1, 10.7891, 106.6961),
	place("sg07", "hcmc", "Phở Hòa Pasteur", Restaurant, "A long-running southern-style phở house with a generous herb plate.", "260C Pasteur, District 3, Hồ Chí Minh City", 4.2, 2, 10.7884, 106.686, "Phở bò tái", "Phở gà"),
	place("sg08", "hcmc", "Cơm Tấm Ba Ghiền", Restaurant, "Broken rice with an enormous grilled pork chop.", "84 Đặng Văn Ngữ, Phú Nhuận, Hồ Chí Minh City", 4.3, 1, 10.8006, 106.6772, "Cơm tấm sườn bì chả", "Sườn nướng"),
	place("sg09", "hcmc", "Bitexco Financial Tower", Landmark, "A lotus-shaped skyscraper with a 49th-floor skydeck.", "2 Hải Triều, District 1, Hồ Chí Minh City", 4.3, 2, 10.7716, 106.7046),
	place("sg10", "hcmc", "Củ Chi Tunnels", Museum, "An underground network of wartime tunnels north-west of the city.", "Phú Hiệp, Củ Chi, Hồ Chí Minh City", 4.5, 2, 11.1413, 106.4634),

	place("ha01", "hoian", "Japanese Covered Bridge", Landmark, "The 16th-century bridge that appears on the 20,000 đồng note.", "Nguyễn Thị Minh Khai, Hội An", 4.4, 1, 15.8772, 108.3269),
	place("ha02", "hoian", "Ancient Town", Landmark, "Yellow merchant houses, assembly halls and lanterns along the Thu Bồn river.", "Minh An Ward, Hội An", 4.8, 1, 15.8776, 108.328),
	place("ha03", "hoian", "An Bàng Beach", Beach, "A relaxed beach lined with thatched-roof bars and sun loungers.", "Cẩm An, Hội An", 4.5, 1, 15.8991, 108.3613),
	place("ha04", "hoian", "Morning Glory Restaurant", Restaurant, "Hội An street food classics served in a restored shophouse.", "106 Nguyễn Thái Học, Hội An", 4.4, 2, 15.8783, 108.3276, "Cao lầu", "White rose dumplings", "Bánh xèo"),
	place("ha05", "hoian", "Hội An Night Market", Market, "A lantern-lit riverside market for snacks and handicrafts.", "Nguyễn Hoàng, An Hội, Hội An", 4.2, 1, 15.8755, 108.3308),
	place("ha06", "hoian", "Trà Quế Vegetable Village", Nature, "Organic herb gardens farmed with seaweed from the nearby lagoon.", "Cẩm Hà, Hội An", 4.4, 1, 15.8926, 108.3424),
	place("ha07", "hoian", "Cao Lầu Thanh", Restaurant, "A tiny family shop devoted to the town's signature noodle.", "26 Thái Phiên, Hội An", 4.5, 1, 15.8786, 108.3266, "Cao lầu"),
	place("ha08", "hoian", "Phước Kiến Assembly Hall", Temple, "An ornate Fujian assembly hall dedicated to the sea goddess Thiên Hậu.", "46 Trần Phú, Hội An", 4.5, 1, 15.8774, 108.3285),
	place("ha09", "hoian", "Reaching Out Tea House", Cafe, "A silent tea house staffed by speech and hearing impaired artisans.", "131 Trần Phú, Hội An", 4.8, 2, 15.8779, 108.327, "Tea tasting set", "Vietnamese coffee"),
	place("ha10", "hoian", "Cua Đại Beach", Beach, "A wide beach at the mouth of the Thu Bồn with views of the Chàm Islands.", "Cửa Đại, Hội An", 4.2, 1, 15.8855, 108.3666),

	place("hu01", "hue", "Imperial Citadel", Landmark, "The walled seat of the Nguyễn dynasty with its Forbidden Purple City.", "Thuận Hòa, Huế", 4.6, 1, 16.4698, 107.5786),
	place("hu02", "hue", "Thiên Mụ Pagoda", Temple, "A seven-storey octagonal tower on a bluff above the Perfume River.", "Kim Long, Huế", 4.6, 1, 16.4537, 107.5508),
	place("hu03", "hue", "Tomb of Khải Định", Landmark, "A hillside tomb with a glittering porcelain and glass mosaic interior.", "Thủy Bằng, Hương Thủy, Huế", 4.6, 1, 16.3939, 107.5869),
	place("hu04", "hue", "Tomb of Tự Đức", Landmark, "A serene complex of lakes, pavilions and frangipani trees.", "Thủy Xuân, Huế", 4.5, 1, 16.4175, 107.5589),
	place("hu05", "hue", "Đông Ba Market", Market, "Huế's largest market, just outside the citadel walls.", "2 Trần Hưng Đạo, Huế", 4.0, 1, 16.4731, 107.5876),
	place("hu06", "hue", "Bún Bò Huế Bà Tuyết", Restaurant, "Spicy lemongrass beef noodle soup at its birthplace.", "47 Nguyễn Công Trứ, Huế", 4.5, 1, 16.4607, 107.5852, "Bún bò Huế", "Chả cua"),
	place("hu07", "hue", "Perfume River", Nature, "Dragon boats drift past pagodas and tombs along the city's river.", "Lê Lợi, Huế", 4.4, 1, 16.4589, 107.5729),
	place("hu08", "hue", "Cơm Hến", Restaurant, "Rice with baby clams, peanuts and crackling from Cồn Hến islet.", "2 Trương Định, Huế", 4.3, 1, 16.4622, 107.5968, "Cơm hến", "Bún hến"),
	place("hu09", "hue", "An Định Palace", Museum, "The European-style residence of the last Nguyễn emperors.", "179 Phan Đình Phùng, Huế", 4.4, 1, 16.4611, 107.5824),
	place("hu10", "hue", "Huế Royal Antiquities Museum", Museum, "Court robes, ceramics and regalia displayed in Long An Palace.", "3 Lê Trực, Huế", 4.3, 1, 16.4713, 107.5756),

	place("nt01", "nhatrang", "VinWonders", Nightlife, "An island theme park reached by the longest over-sea cable car.", "Hòn Tre Island, Nha Trang", 4.4, 3, 12.2231, 109.2289),
	place("nt02", "nhatrang", "Po Nagar Cham Towers", Temple, "Brick towers built by the Cham between the 7th and 12th centuries.", "2 Tháng 4, Vĩnh Phước, Nha Trang", 4.4, 1, 12.2653, 109.1962),
	place("nt03", "nhatrang", "Nha Trang Beach", Beach, "Six kilometres of sand fronting the city's palm-lined promenade.", "Trần Phú, Nha Trang", 4.4, 1, 12.2464, 109.1963),
	place("nt04", "nhatrang", "Dam Market", Market, "A circular market hall selling dried fish, fruit and pearls.", "Vạn Thạnh, Nha Trang", 4.0, 1, 12.2435, 109.1915),
	place("nt05", "nhatrang", "Long Thanh Gallery", Museum, "Black-and-white photographs of Vietnamese life by Long Thanh.", "126 Hoàng Văn Thụ, Nha Trang", 4.6, 1, 12.2483, 109.1916),
	place("nt06", "nhatrang", "Hòn Chồng Rocks", Nature, "Stacked granite boulders on a headland north of the city.", "Vĩnh Phước, Nha Trang", 4.1, 1, 12.2737, 109.2002),
	place("nt07", "nhatrang", "Sailing Club", Nightlife, "A beachfront club with fire shows and late-night DJs.", "72 Trần Phú, Nha Trang", 4.3, 3, 12.2442, 109.1975),
	place("nt08", "nhatrang", "Lanterns Restaurant", Restaurant, "A community-minded restaurant serving Vietnamese classics.", "30A Nguyễn Thiện Thuật, Nha Trang", 4.6, 2, 12.2401, 109.1935, "Bánh căn", "Nem nướng", "Seafood hotpot"),
	place("nt09", "nhatrang", "Hòn Mun Island", Nature, "A marine reserve with the best snorkelling and diving in the bay.", "Nha Trang Bay, Nha Trang", 4.3, 2, 12.1748, 109.268),
	place("nt10", "nhatrang", "Institute of Oceanography", Museum, "A 1920s research institute with aquariums and a preserved whale skeleton.", "1 Cầu Đá, Nha Trang", 4.2, 1, 12.2184, 109.2143),

	place("pq01", "phuquoc", "Vinpearl Safari", Nature, "Vietnam's first open-range safari park.", "Gành Dầu, Phú Quốc", 4.5, 3, 10.3692, 103.8755),
	place("pq02", "phuquoc", "Sao Beach", Beach, "Powder-white sand and turquoise water on the island's south-east coast.", "An Thới, Phú Quốc", 4.5, 1, 10.1633, 104.0417),
	place("pq03", "phuquoc", "Night Market", Market, "Grilled seafood stalls and pearl vendors in Dương Đông town.", "Bạch Đằng, Dương Đông, Phú Quốc", 4.1, 1, 10.2151, 103.9639),
	place("pq04", "phuquoc", "Dinh Cau Rock Temple", Temple, "A tiny shrine to the sea goddess perched on rocks at the river mouth.", "Dương Đông, Phú Quốc", 4.2, 1, 10.2161, 103.96),
	place("pq05", "phuquoc", "Bãi Dài Beach", Beach, "A long, quiet beach famous for its sunsets.", "Gành Dầu, Phú Quốc", 4.4, 1, 10.3319, 103.8529),
	place("pq06", "phuquoc", "Fish Sauce Factory", Museum, "Wooden barrels of fermenting anchovies and a tasting room.", "Dương Đông, Phú Quốc", 4.0, 1, 10.2204, 103.968),
	place("pq07", "phuquoc", "Hòn Thơm Cable Car", Landmark, "An eight-kilometre cable car over the An Thới archipelago.", "An Thới, Phú Quốc", 4.6, 3, 10.0478, 104.0145),
	place("pq08", "phuquoc", "Crab House Restaurant", Restaurant, "Island crab cooked a dozen ways.", "21 Trần Hưng Đạo, Dương Đông, Phú Quốc", 4.3, 2, 10.174, 103.987, "Ghẹ Hàm Ninh", "Crab fried rice"),
	place("pq09", "phuquoc", "National Park", Nature, "Primary forest and streams covering the island's northern half.", "Cửa Dương, Phú Quốc", 4.3, 1, 10.3502, 103.9258),
	place("pq10", "phuquoc", "Sunset Sanato Beach Club", Nightlife, "Sculptures in the surf and sunset cocktails.", "Bãi Trường, Phú Quốc", 4.4, 2, 10.1808, 103.965),

	place("dl01", "dalat", "Xuân Hương Lake", Nature, "A crescent lake at the centre of town, ringed by pine trees.", "Trần Quốc Toản, Đà Lạt", 4.4, 1, 11.9434, 108.4423),
	place("dl02", "dalat", "Crazy House", Landmark, "A surreal guesthouse of tree-trunk towers and twisting walkways.", "3 Huỳnh Thúc Kháng, Đà Lạt", 4.3, 1, 11.9364, 108.4316),
	place("dl03", "dalat", "Valley of Love", Nature, "Lakes, gardens and pine hills north of the centre.", "7 Mai Anh Đào, Đà Lạt", 4.0, 2, 11.9589, 108.4498),
	place("dl04", "dalat", "Dalat Railway Station", Landmark, "An Art Deco station from 1938 with a short scenic line to Trại Mát.", "1 Quang Trung, Đà Lạt", 4.3, 1, 11.9416, 108.4548),
	place("dl05", "dalat", "Linh Phước Pagoda", Temple, "A pagoda encrusted with broken porcelain, glass and a bottle dragon.", "120 Tự Phước, Trại Mát, Đà Lạt", 4.6, 1, 11.9146, 108.4764),
	place("dl06", "dalat", "Night Market", Market, "Strawberries, knitwear and grilled rice paper on the market steps.", "Nguyễn Thị Minh Khai, Đà Lạt", 4.1, 1, 11.946, 108.4406),
	place("dl07", "dalat", "Datanla Waterfall", Nature, "A cascading waterfall reached by an alpine coaster.", "Prenn Pass, Đà Lạt", 4.3, 2, 11.9266, 108.4592),
	place("dl08", "dalat", "Lẩu Gà Lá É", Restaurant, "Chicken hotpot with the peppery lá é herb, best on a cold evening.", "Tăng Bạt Hổ, Đà Lạt", 4.4, 2, 11.947, 108.4326, "Lẩu gà lá é", "Gà nướng"),
	place("dl09", "dalat", "Mê Linh Coffee Garden", Cafe, "A hillside coffee farm with views over the valley.", "Tổ 20, Tà Nung, Đà Lạt", 4.5, 1, 11.9554, 108.4211, "Cà phê chồn", "Cà phê sữa đá"),
	place("dl10", "dalat", "Domaine de Marie Church", Temple, "A pink convent church built in the 1940s.", "1 Ngô Quyền, Đà Lạt", 4.4, 1, 11.9372, 108.4382),

	place("sp01", "sapa", "Fansipan Peak", Nature, "The roof of Indochina at 3,143 metres, reachable by cable car.", "Fansipan Legend, Sa Pa", 4.7, 3, 22.3033, 103.7751),
	place("sp02", "sapa", "Cát Cát Village", Landmark, "A Black H'Mông village with a waterfall and weaving workshops.", "San Sả Hồ, Sa Pa", 4.2, 1, 22.325, 103.8339),
	place("sp03", "sapa", "Mường Hoa Valley", Nature, "Terraced rice fields and ancient carved rocks along a valley stream.", "Hầu Thào, Sa Pa", 4.6, 1, 22.298, 103.866),
	place("sp04", "sapa", "Tả Phìn Village", Landmark, "A Red Dao village known for herbal baths and embroidery.", "Tả Phìn, Sa Pa", 4.3, 1, 22.3591, 103.8591),
	place("sp05", "sapa", "Hàm Rồng Mountain", Nature, "Orchid gardens and lookouts directly above town.", "Sa Pa Town", 4.2, 1, 22.3394, 103.8432),
	place("sp06", "sapa", "Love Waterfall", Nature, "A forest trail leading to a 100-metre waterfall.", "San Sả Hồ, Sa Pa", 4.3, 1, 22.3201, 103.7987),
	place("sp07", "sapa", "Sa Pa Market", Market, "Highland produce, herbs and textiles brought down from the villages.", "Sa Pa Town", 4.0, 1, 22.3364, 103.8438),
	place("sp08", "sapa", "Hill Station Signature", Restaurant, "Modern takes on H'Mông cooking in a stone-walled dining room.", "37 Phan Xi Păng, Sa Pa", 4.5, 2, 22.3341, 103.8397, "Thắng cố", "Smoked buffalo", "Salmon hotpot"),
	place("sp09", "sapa", "Silver Waterfall", Nature, "A roadside waterfall on the Ô Quy Hồ pass.", "Ô Quy Hồ Pass, Sa Pa", 4.1, 1, 22.3403, 103.7939),
	place("sp10", "sapa", "Sapa Jade Hill Resort", Nightlife, "Evening bonfires and highland music overlooking the terraces.", "Cát Cát, Sa Pa", 4.3, 3, 22.298, 103.8526),

	place("hl01", "halong", "Hạ Long Bay Cruise", Nature, "Overnight junk cruises among thousands of limestone karsts.", "Tuần Châu Harbour, Hạ Long", 4.7, 3, 20.9, 107.08),
	place("hl02", "halong", "Sửng Sốt Cave", Nature, "The bay's grandest cave, with vast chambers of stalactites.", "Bồ Hòn Island, Hạ Long Bay", 4.6, 1, 20.8967, 107.1132),
	place("hl03", "halong", "Ti Tốp Island", Beach, "A small beach and a summit staircase with panoramic bay views.", "Ti Tốp Island, Hạ Long Bay", 4.5, 1, 20.9091, 107.0986),
	place("hl04", "halong", "Bái Tử Long Bay", Nature, "The quieter sister bay with untouched islets.", "Vân Đồn, Quảng Ninh", 4.6, 2, 20.95, 107.26),
	place("hl05", "halong", "Đầu Gỗ Cave", Nature, "A wooden-stake cave linked to the 13th-century Bạch Đằng battle.", "Đầu Gỗ Island, Hạ Long Bay", 4.3, 1, 20.8926, 107.0696),
	place("hl06", "halong", "Floating Fishing Villages", Landmark, "Houses on rafts where families have fished for generations.", "Cửa Vạn, Hạ Long Bay", 4.4, 1, 20.8115, 107.0458),
	place("hl07", "halong", "Night Market", Market, "Seafood, pearls and souvenirs by the Bãi Cháy waterfront.", "Bãi Cháy, Hạ Long", 3.9, 1, 20.955, 107.07),
	place("hl08", "halong", "Cái Dăm Seafood Street", Restaurant, "A row of seafood restaurants selecting from live tanks.", "Cái Dăm, Bãi Cháy, Hạ Long", 4.2, 2, 20.949, 107.072, "Chả mực", "Sá sùng", "Steamed clams"),
	place("hl09", "halong", "Sun World Hạ Long Park", Nightlife, "A hilltop park with the Sun Wheel and a record-breaking cable car.", "Bãi Cháy, Hạ Long", 4.3, 3, 20.9577, 107.0505),
	place("hl10", "halong", "Bãi Cháy Beach", Beach, "A man-made beach in the tourist centre of Hạ Long.", "Hạ Long Road, Bãi Cháy, Hạ Long", 4.0, 1, 20.9559, 107.061),
}
