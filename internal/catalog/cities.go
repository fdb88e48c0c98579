package catalog

type City struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Region        string `json:"region"`
	Description   string `json:"description"`
	GradientIndex int    `json:"gradient_index"`
	ImageAsset    string `json:"image_asset"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

var cities = []City{
	{
		ID:            "hanoi",
		Name:          "Hà Nội",
		Region:        "Northern Vietnam",
		Description:   "Vietnam's capital city blends ancient temples, French colonial architecture, and bustling street food culture. The Old Quarter's narrow streets buzz with motorbikes and vendors selling phở and egg coffee.",
		GradientIndex: 0,
		ImageAsset:    "city_hanoi",
	},
	{
		ID:            "danang",
		Name:          "Đà Nẵng",
		Region:        "Central Vietnam",
		Description:   "A coastal city famous for the iconic Golden Bridge at Bà Nà Hills, stunning beaches, and the mystical Marble Mountains. A perfect base for exploring central Vietnam.",
		GradientIndex: 1,
		ImageAsset:    "city_danang",
	},
	{
		ID:            "hcmc",
		Name:          "Hồ Chí Minh City",
		Region:        "Southern Vietnam",
		Description:   "Vietnam's largest city is a dynamic metropolis of skyscrapers, colonial landmarks, and vibrant street life. From war history museums to rooftop bars, Saigon never sleeps.",
		GradientIndex: 2,
		ImageAsset:    "city_hcmc",
	},
	{
		ID:            "hoian",
		Name:          "Hội An",
		Region:        "Central Vietnam",
		Description:   "A UNESCO World Heritage town famous for its lantern-lit ancient streets, tailor shops, and riverside charm. Best experienced at night when thousands of colorful lanterns illuminate the old town.",
		GradientIndex: 3,
		ImageAsset:    "city_hoian",
	},
	{
		ID:            "hue",
		Name:          "Huế",
		Region:        "Central Vietnam",
		Description:   "The former imperial capital of Vietnam, home to the magnificent Citadel, royal tombs, and the serene Perfume River. A city steeped in royal history and poetic beauty.",
		GradientIndex: 4,
		ImageAsset:    "city_hue",
	},
	{
		ID:            "nhatrang",
		Name:          "Nha Trang",
		Region:        "South Central Coast",
		Description:   "A popular beach resort city with crystal-clear waters, vibrant coral reefs, and a lively beachfront promenade. Famous for its fresh seafood and island-hopping tours.",
		GradientIndex: 5,
		ImageAsset:    "city_nhatrang",
	},
	{
		ID:            "phuquoc",
		Name:          "Phú Quốc",
		Region:        "Southern Islands",
		Description:   "Vietnam's largest island paradise with pristine beaches, lush national parks, and spectacular sunsets. Known for its fish sauce production, pearl farms, and luxury resorts.",
		GradientIndex: 6,
		ImageAsset:    "city_phuquoc",
	},
	{
		ID:            "dalat",
		Name:          "Đà Lạt",
		Region:        "Central Highlands",
		Description:   "The 'City of Eternal Spring' sits at 1,500m elevation with cool pine forests, flower gardens, and French colonial villas. A romantic escape famous for strawberries and artichoke tea.",
		GradientIndex: 7,
		ImageAsset:    "city_dalat",
	},
	{
		ID:            "sapa",
		Name:          "Sa Pa",
		Region:        "Northwest Highlands",
		Description:   "A misty mountain town near the Chinese border, surrounded by terraced rice paddies and home to vibrant ethnic minority villages. Gateway to Fansipan, Indochina's highest peak.",
		GradientIndex: 8,
		ImageAsset:    "city_sapa",
	},
	{
		ID:            "halong",
		Name:          "Hạ Long",
		Region:        "Northeast Vietnam",
		Description:   "Home to the legendary Hạ Long Bay, a UNESCO World Heritage Site with nearly 2,000 limestone karsts and islands rising from emerald waters. Best explored by overnight cruise.",
		GradientIndex: 9,
		ImageAsset:    "city_halong",
	},
}

var cityCoordinates = map[string]Coordinates{
	"hanoi":    {21.0285, 105.8542},
	"danang":   {16.0471, 108.2068},
	"hcmc":     {10.7769, 106.7009},
	"hoian":    {15.8801, 108.338},
	"hue":      {16.4637, 107.5909},
	"nhatrang": {12.2388, 109.1967},
	"phuquoc":  {10.2899, 103.984},
	"dalat":    {11.9404, 108.4583},
	"sapa":     {22.3364, 103.8438},
	"halong":   {20.9101, 107.1839},
}

// PaletteSize is the number of gradient slots cities are drawn with.
const PaletteSize = 10
