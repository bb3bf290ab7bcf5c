// Package voice interprets spoken (or typed) commands and turns them into
// navigation.
package voice

import (
	"github.com/MrJamesThe3rd/vyaparx/internal/i18n"
	"github.com/MrJamesThe3rd/vyaparx/internal/nav"
)

type Phrase struct {
	Text   string   `json:"text"`
	Target nav.View `json:"target"`
}

// Table is the ordered phrase list of one language. Order matters: when
// several phrases match, the earliest one wins.
type Table struct {
	Lang     i18n.Language `json:"lang"`
	Phrases  []Phrase      `json:"phrases"`
	Examples []string      `json:"examples"`
}

type Tables map[i18n.Language]Table

func DefaultTables() Tables {
	return Tables{
		i18n.English: english(),
		i18n.Hindi:   hindi(),
	}
}

func phrases(target nav.View, texts ...string) []Phrase {
	out := make([]Phrase, len(texts))
	for i, t := range texts {
		out[i] = Phrase{Text: t, Target: target}
	}

	return out
}

func table(lang i18n.Language, groups ...[]Phrase) Table {
	t := Table{Lang: lang}
	for _, g := range groups {
		t.Phrases = append(t.Phrases, g...)
	}

	return t
}

func english() Table {
	t := table(i18n.English,
		phrases(nav.Dashboard, "show dashboard", "open dashboard", "go to dashboard", "dashboard", "home"),
		phrases(nav.Customers, "show customers", "open customers", "customer list", "customers", "view customers", "manage customers"),
		phrases(nav.Products, "show products", "open products", "product list", "products", "inventory", "stock"),
		phrases(nav.Billing, "create bill", "new bill", "billing", "invoice", "create invoice", "new invoice"),
		phrases(nav.Payments, "show payments", "payments", "payment history", "transactions"),
		phrases(nav.Marketing, "marketing", "campaigns", "send campaign", "whatsapp marketing"),
		phrases(nav.Messaging, "send message", "messaging", "whatsapp", "chat"),
		phrases(nav.Reports, "show reports", "reports", "analytics", "sales report"),
		phrases(nav.Settings, "open settings", "settings", "preferences"),
		phrases(nav.Notifications, "notifications"),
		phrases(nav.Profile, "profile"),
		phrases(nav.Delivery, "delivery", "orders"),
		phrases(nav.Leads, "leads"),
		phrases(nav.Requirements, "requirements"),
	)
	t.Examples = []string{
		"Show dashboard", "Show customers", "Create bill", "Send message",
		"Show payments", "Open settings", "Marketing campaigns", "View reports",
	}

	return t
}

func hindi() Table {
	t := table(i18n.Hindi,
		phrases(nav.Dashboard, "डैशबोर्ड दिखाओ", "डैशबोर्ड खोलो", "डैशबोर्ड", "होम", "मुख्य पृष्ठ"),
		phrases(nav.Customers, "ग्राहक दिखाओ", "ग्राहक खोलो", "ग्राहक सूची", "ग्राहक", "कस्टमर"),
		phrases(nav.Products, "उत्पाद दिखाओ", "उत्पाद खोलो", "उत्पाद सूची", "उत्पाद", "प्रोडक्ट", "स्टॉक"),
		phrases(nav.Billing, "बिल बनाओ", "नया बिल", "बिलिंग", "चालान", "नया चालान"),
		phrases(nav.Payments, "भुगतान दिखाओ", "भुगतान", "पेमेंट", "लेनदेन"),
		phrases(nav.Marketing, "मार्केटिंग", "अभियान", "व्हाट्सएप मार्केटिंग"),
		phrases(nav.Messaging, "संदेश भेजो", "संदेश", "व्हाट्सएप", "चैट"),
		phrases(nav.Reports, "रिपोर्ट दिखाओ", "रिपोर्ट", "विश्लेषण"),
		phrases(nav.Settings, "सेटिंग्स खोलो", "सेटिंग्स", "सेटिंग"),
		phrases(nav.Notifications, "सूचनाएं"),
		phrases(nav.Profile, "प्रोफ़ाइल"),
		phrases(nav.Delivery, "डिलीवरी", "ऑर्डर"),
		phrases(nav.Leads, "लीड्स"),
		phrases(nav.Requirements, "आवश्यकताएं"),
	)
	t.Examples = []string{
		"डैशबोर्ड दिखाओ", "ग्राहक दिखाओ", "बिल बनाओ", "संदेश भेजो",
		"भुगतान दिखाओ", "सेटिंग्स खोलो", "मार्केटिंग अभियान", "रिपोर्ट देखें",
	}

	return t
}
