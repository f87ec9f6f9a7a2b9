package harvest

// Prayer is one of the static prayer PDFs mirrored alongside the
// sermons. The table is fixed; the prayer catalog is rebuilt from it on
// every run.
type Prayer struct {
	// Key is the stable catalog id for the prayer document.
	Key string
	// Title is the human-readable label, also the source of the slug.
	Title string
	// URL is the remote PDF location.
	URL string
}

// Prayers lists the static prayer documents in catalog order.
var Prayers = []Prayer{
	{
		Key:   "friday_prayer",
		Title: "Friday Khutbah Prayers",
		URL:   "https://dinhizmetleri.diyanet.gov.tr/HutbeDualari/Cuma%20Hutbesi%20Dualar%C4%B1.pdf",
	},
	{
		Key:   "eid_prayer",
		Title: "Eid Khutbah Prayers",
		URL:   "https://dinhizmetleri.diyanet.gov.tr/HutbeDualari/Bayram%20Hutbesi%20Dualar%C4%B1.pdf",
	},
}
