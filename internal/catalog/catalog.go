package catalog

import "strings"

// Entry is one taxonomy item with its per-language labels.
type Entry struct {
	Code string  `json:"code"`
	Icon *string `json:"icon"`
	En   string  `json:"en"`
	Fr   string  `json:"fr"`
	Ar   string  `json:"ar"`
}

func icon(s string) *string { return &s }

// Amenities is the fixed amenity catalog. Codes are what gets stored in
// the toilets.amenities JSON column.
var Amenities = []Entry{
	{Code: "paper", Icon: icon("toilet-paper"), En: "Toilet paper", Fr: "Papier toilette", Ar: "ورق تواليت"},
	{Code: "soap", Icon: icon("soap"), En: "Soap", Fr: "Savon", Ar: "صابون"},
	{Code: "water", Icon: icon("droplet"), En: "Water", Fr: "Eau", Ar: "ماء"},
	{Code: "bidet", Icon: icon("shower-head"), En: "Bidet / hand shower", Fr: "Bidet / douchette", Ar: "شطافة"},
	{Code: "hand_dryer", Icon: icon("wind"), En: "Hand dryer", Fr: "Sèche-mains", Ar: "مجفف يدين"},
	{Code: "mirror", Icon: icon("mirror"), En: "Mirror", Fr: "Miroir", Ar: "مرآة"},
	{Code: "hooks", Icon: icon("hook"), En: "Coat hooks", Fr: "Crochets", Ar: "علاقات"},
	{Code: "baby_change", Icon: icon("baby"), En: "Baby changing table", Fr: "Table à langer", Ar: "طاولة تغيير الحفاضات"},
	{Code: "accessible", Icon: icon("wheelchair"), En: "Wheelchair accessible", Fr: "Accessible PMR", Ar: "مهيأ لذوي الاحتياجات"},
	{Code: "wifi", Icon: icon("wifi"), En: "Wi-Fi", Fr: "Wi-Fi", Ar: "واي فاي"},
	{Code: "ac", Icon: icon("snowflake"), En: "Air conditioning", Fr: "Climatisation", Ar: "تكييف"},
	{Code: "shower", Icon: icon("shower"), En: "Shower", Fr: "Douche", Ar: "دوش"},
}

// Rules is the fixed house-rule catalog.
var Rules = []Entry{
	{Code: "for_customers_only", En: "For customers only", Fr: "Réservé aux clients", Ar: "للزبائن فقط"},
	{Code: "no_smoking", En: "No smoking", Fr: "Interdit de fumer", Ar: "ممنوع التدخين"},
	{Code: "keep_clean", En: "Keep it clean", Fr: "Gardez propre", Ar: "حافظ على النظافة"},
	{Code: "ask_for_key", En: "Ask staff for the key", Fr: "Demandez la clé au personnel", Ar: "اطلب المفتاح من الموظفين"},
	{Code: "time_limited", En: "Limited time of use", Fr: "Durée d'utilisation limitée", Ar: "مدة الاستعمال محدودة"},
	{Code: "no_photos", En: "No photos", Fr: "Photos interdites", Ar: "ممنوع التصوير"},
}

// AccessMethodEntries describes how a visitor gets in.
var AccessMethodEntries = []Entry{
	{Code: "public", En: "Open to the public", Fr: "Ouvert au public", Ar: "مفتوح للعموم"},
	{Code: "code", En: "Door code", Fr: "Code d'accès", Ar: "رمز الدخول"},
	{Code: "staff", En: "Ask the staff", Fr: "Demander au personnel", Ar: "اسأل الموظفين"},
	{Code: "key", En: "Key required", Fr: "Clé requise", Ar: "مفتاح مطلوب"},
	{Code: "app", En: "Unlocked via app", Fr: "Déverrouillage via l'application", Ar: "فتح عبر التطبيق"},
}

var (
	amenityIndex = index(Amenities)
	ruleIndex    = index(Rules)
	accessIndex  = index(AccessMethodEntries)
)

func index(entries []Entry) map[string]Entry {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.Code] = e
	}
	return m
}

// AmenityLabel resolves an amenity code to a label in the requested
// language, falling back through fr, en, ar and finally a prettified code
// so unknown codes still render something readable.
func AmenityLabel(code, lang string) string {
	return label(amenityIndex, code, lang)
}

func RuleLabel(code, lang string) string {
	return label(ruleIndex, code, lang)
}

func AccessMethodLabel(code, lang string) string {
	return label(accessIndex, code, lang)
}

func AmenityEntry(code string) (Entry, bool) {
	e, ok := amenityIndex[code]
	return e, ok
}

func label(idx map[string]Entry, code, lang string) string {
	e, ok := idx[code]
	if !ok {
		return Titleize(code)
	}
	for _, s := range []string{pick(e, lang), e.Fr, e.En, e.Ar} {
		if s != "" {
			return s
		}
	}
	return Titleize(code)
}

func pick(e Entry, lang string) string {
	switch lang {
	case "en":
		return e.En
	case "fr":
		return e.Fr
	case "ar":
		return e.Ar
	}
	return ""
}

// Titleize turns a snake_case code into a human label: "baby_change"
// becomes "Baby change".
func Titleize(code string) string {
	s := strings.ReplaceAll(code, "_", " ")
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
