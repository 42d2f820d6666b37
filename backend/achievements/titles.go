package achievements

// rankTitle is one entry of the descending rank table.
type rankTitle struct {
	Threshold int
	Title     string
}

// DefaultTitle is the rank below the lowest threshold.
const DefaultTitle = "Medical Aspirant"

var rankTitles = []rankTitle{
	{60, "Sovereign of Medical Knowledge"},
	{50, "Grandmaster Clinician"},
	{40, "Eminent Health Scholar"},
	{30, "Legendary Clinician"},
	{25, "Master of Medicine"},
	{20, "Healthcare Hero"},
	{15, "Clinical Commander"},
	{10, "Medical Maestro"},
	{5, "Rising Star"},
}

// TitleFor returns the highest rank whose threshold is at or below the
// given achievement count.
func TitleFor(achievementCount int) string {
	for _, r := range rankTitles {
		if achievementCount >= r.Threshold {
			return r.Title
		}
	}
	return DefaultTitle
}
