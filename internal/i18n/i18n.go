// Package i18n provides the site's two-language string table.
package i18n

import "errors"

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageNepali  Language = "np"
)

var ErrUnknownLanguage = errors.New("unknown_language")

func ParseLanguage(code string) (Language, error) {
	switch code {
	case "en":
		return LanguageEnglish, nil
	case "np", "ne":
		return LanguageNepali, nil
	default:
		return "", ErrUnknownLanguage
	}
}

type Provider struct {
	language Language
	tables   map[Language]map[string]string
}

func NewProvider(language Language) *Provider {
	return &Provider{language: language, tables: translations}
}

func (p *Provider) Language() Language { return p.language }

func (p *Provider) SetLanguage(language Language) error {
	if _, ok := p.tables[language]; !ok {
		return ErrUnknownLanguage
	}
	p.language = language
	return nil
}

// T looks up key in the current language. Unknown keys come back verbatim so
// a missing translation shows up on the page instead of rendering blank.
func (p *Provider) T(key string) string {
	if value, ok := p.tables[p.language][key]; ok {
		return value
	}
	if p.language != LanguageEnglish {
		if value, ok := p.tables[LanguageEnglish][key]; ok {
			return value
		}
	}
	return key
}

// Table returns a copy of the current language's full string table.
func (p *Provider) Table() map[string]string {
	table := p.tables[p.language]
	out := make(map[string]string, len(table))
	for key, value := range table {
		out[key] = value
	}
	return out
}

var translations = map[Language]map[string]string{
	LanguageEnglish: {
		"home":           "Home",
		"about":          "About",
		"academics":      "Academics",
		"gallery":        "Gallery",
		"notices":        "Notices",
		"admission":      "Admission",
		"contact":        "Contact",
		"heroTitle":      "Nurturing Minds, Building Futures",
		"heroSubtitle":   "Quality education from Montessori to Class 9",
		"applyNow":       "Apply Now",
		"latestNotices":  "Latest Notices",
		"viewAll":        "View All",
		"readMore":       "Read More",
		"ourGallery":     "Our Gallery",
		"contactUs":      "Contact Us",
		"sendMessage":    "Send Message",
		"admissionOpen":  "Admission Open",
		"adminLogin":     "Admin Login",
		"adminPanel":     "Admin Panel",
		"logout":         "Logout",
		"unreadMessages": "unread",
		"pendingReview":  "pending",
	},
	LanguageNepali: {
		"home":           "गृहपृष्ठ",
		"about":          "हाम्रो बारेमा",
		"academics":      "शैक्षिक",
		"gallery":        "ग्यालरी",
		"notices":        "सूचनाहरू",
		"admission":      "भर्ना",
		"contact":        "सम्पर्क",
		"heroTitle":      "मनको विकास, भविष्यको निर्माण",
		"heroSubtitle":   "मन्टेश्वरीदेखि कक्षा ९ सम्म गुणस्तरीय शिक्षा",
		"applyNow":       "आवेदन दिनुहोस्",
		"latestNotices":  "पछिल्ला सूचनाहरू",
		"viewAll":        "सबै हेर्नुहोस्",
		"readMore":       "थप पढ्नुहोस्",
		"ourGallery":     "हाम्रो ग्यालरी",
		"contactUs":      "सम्पर्क गर्नुहोस्",
		"sendMessage":    "सन्देश पठाउनुहोस्",
		"admissionOpen":  "भर्ना खुला छ",
		"adminLogin":     "प्रशासक लगइन",
		"adminPanel":     "प्रशासक प्यानल",
		"logout":         "लगआउट",
		"unreadMessages": "नपढिएका",
		"pendingReview":  "बाँकी",
	},
}
