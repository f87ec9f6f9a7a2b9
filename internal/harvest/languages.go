package harvest

// Language is one site section the harvester walks.
type Language struct {
	// Code is the catalog language code and local directory name.
	Code string
	// ListURL is the paginated listing page for the section.
	ListURL string
}

// Languages lists the Diyanet hutbe sections in harvest order. The
// section slugs are taken from the site as published, non-ASCII and all.
var Languages = []Language{
	{Code: "tr", ListURL: "https://dinhizmetleri.diyanet.gov.tr/kategoriler/yayinlarimiz/hutbeler/türkçe"},
	{Code: "de", ListURL: "https://dinhizmetleri.diyanet.gov.tr/kategoriler/yayinlarimiz/hutbeler/deutsche-(almanca)"},
	{Code: "en", ListURL: "https://dinhizmetleri.diyanet.gov.tr/kategoriler/yayinlarimiz/hutbeler/english-(ingilizce)"},
	{Code: "fr", ListURL: "https://dinhizmetleri.diyanet.gov.tr/kategoriler/yayinlarimiz/hutbeler/français-(fransızca)"},
	{Code: "ru", ListURL: "https://dinhizmetleri.diyanet.gov.tr/kategoriler/yayinlarimiz/hutbeler/русский-(rusça)"},
	{Code: "ar", ListURL: "https://dinhizmetleri.diyanet.gov.tr/kategoriler/yayinlarimiz/hutbeler/عربي-(arapça)"},
	{Code: "it", ListURL: "https://dinhizmetleri.diyanet.gov.tr/kategoriler/yayinlarimiz/hutbeler/italiano-(italyanca)"},
	{Code: "es", ListURL: "https://dinhizmetleri.diyanet.gov.tr/kategoriler/yayinlarimiz/hutbeler/espanol-(ispanyolca)"},
}
