package i18n

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"golang.org/x/text/number"
)

// Message keys double as the English text.
const (
	MsgCustomerAdded        = "Customer Added"
	MsgCustomerAddedBody    = "%s has been added successfully"
	MsgProductAdded         = "Product Added"
	MsgProductAddedBody     = "%s has been added to inventory"
	MsgInvoiceCreated       = "Invoice Created"
	MsgInvoiceCreatedBody   = "Invoice for %s created"
	MsgCampaignCreated      = "Campaign Created"
	MsgCampaignCreatedBody  = "%s campaign has been created"
	MsgVoiceCommand         = "Voice Command"
	MsgNavigatingTo         = "Navigating to %s"
	MsgCommandExecuted      = "Command executed successfully"
	MsgCommandNotRecognized = "Command not recognized. Did you mean: %s?"
	MsgOr                   = " or "
	MsgNoSpeech             = "No speech detected. Please try again."
	MsgAudioCapture         = "Microphone not accessible. Please check permissions."
	MsgNotAllowed           = "Microphone permission denied."
	MsgRecognitionError     = "Voice recognition error. Please try again."
	MsgAssistantReady       = "Voice assistant ready for commands"
	MsgWelcome              = "Welcome to VyaparX"
	MsgWelcomeBody          = "Your business management platform is ready to use!"
	MsgUnknown              = "Unknown"
	MsgNoPayment            = "No payment"
	MsgOutstanding          = "Outstanding"

	MsgDashboard     = "Dashboard"
	MsgCustomers     = "Customers"
	MsgProducts      = "Products"
	MsgBilling       = "Billing"
	MsgMarketing     = "Marketing"
	MsgMessaging     = "Messaging"
	MsgPayments      = "Payments"
	MsgReports       = "Reports"
	MsgNotifications = "Notifications"
	MsgProfile       = "Profile"
	MsgSettings      = "Settings"
	MsgDelivery      = "Delivery"
	MsgRequirements  = "Requirements"
	MsgLeads         = "Leads"
)

var hindi = map[string]string{
	MsgCustomerAdded:        "ग्राहक जोड़ा गया",
	MsgCustomerAddedBody:    "%s सफलतापूर्वक जोड़ा गया",
	MsgProductAdded:         "उत्पाद जोड़ा गया",
	MsgProductAddedBody:     "%s इन्वेंटरी में जोड़ा गया",
	MsgInvoiceCreated:       "चालान बनाया गया",
	MsgInvoiceCreatedBody:   "%s के लिए चालान बनाया गया",
	MsgCampaignCreated:      "अभियान बनाया गया",
	MsgCampaignCreatedBody:  "%s अभियान बनाया गया है",
	MsgVoiceCommand:         "आवाज़ कमांड",
	MsgNavigatingTo:         "%s पर जा रहे हैं",
	MsgCommandExecuted:      "कमांड सफलतापूर्वक निष्पादित",
	MsgCommandNotRecognized: "कमांड समझ नहीं आया। क्या आपका मतलब था: %s?",
	MsgOr:                   " या ",
	MsgNoSpeech:             "कोई आवाज़ नहीं सुनाई दी। कृपया फिर से कोशिश करें।",
	MsgAudioCapture:         "माइक्रोफोन उपलब्ध नहीं है। कृपया अनुमतियां जांचें।",
	MsgNotAllowed:           "माइक्रोफोन की अनुमति नहीं दी गई।",
	MsgRecognitionError:     "आवाज़ पहचान में त्रुटि। कृपया फिर से कोशिश करें।",
	MsgAssistantReady:       "आवाज़ सहायक कमांड के लिए तैयार",
	MsgWelcome:              "VyaparX में आपका स्वागत है",
	MsgWelcomeBody:          "आपका व्यापार प्रबंधन प्लेटफ़ॉर्म उपयोग के लिए तैयार है!",
	MsgUnknown:              "अज्ञात",
	MsgNoPayment:            "कोई भुगतान नहीं",
	MsgOutstanding:          "बकाया",

	MsgDashboard:     "डैशबोर्ड",
	MsgCustomers:     "ग्राहक",
	MsgProducts:      "उत्पाद",
	MsgBilling:       "बिलिंग",
	MsgMarketing:     "मार्केटिंग",
	MsgMessaging:     "संदेश",
	MsgPayments:      "भुगतान",
	MsgReports:       "रिपोर्ट",
	MsgNotifications: "सूचनाएं",
	MsgProfile:       "प्रोफ़ाइल",
	MsgSettings:      "सेटिंग्स",
	MsgDelivery:      "डिलीवरी",
	MsgRequirements:  "आवश्यकताएं",
	MsgLeads:         "लीड्स",
}

var messages = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))

	for key, hi := range hindi {
		// Keys are static; SetString only fails on malformed tags.
		_ = b.SetString(language.English, key, key)
		_ = b.SetString(language.Hindi, key, hi)
	}

	return b
}

// Printer returns a message printer bound to the dashboard catalog.
func Printer(l Language) *message.Printer {
	return message.NewPrinter(l.Tag(), message.Catalog(messages))
}

// T translates key into l and formats it with args.
func T(l Language, key string, args ...any) string {
	return Printer(l).Sprintf(key, args...)
}

// FormatRupees renders an amount with the locale's digit grouping.
func FormatRupees(l Language, amount decimal.Decimal) string {
	return "₹" + Printer(l).Sprint(number.Decimal(amount.InexactFloat64(), number.MaxFractionDigits(2)))
}
