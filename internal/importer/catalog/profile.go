package catalog

import "strings"

// field identifies a merchant record attribute a CSV column can feed.
type field string

const (
	fieldName         field = "name"
	fieldPrice        field = "price"
	fieldStock        field = "stock"
	fieldMinStock     field = "min_stock"
	fieldCategory     field = "category"
	fieldSKU          field = "sku"
	fieldSupplier     field = "supplier"
	fieldDescription  field = "description"
	fieldPhone        field = "phone"
	fieldEmail        field = "email"
	fieldAddress      field = "address"
	fieldBusinessType field = "business_type"
	fieldGSTNumber    field = "gst_number"
	fieldWhatsApp     field = "whatsapp"
)

// Profile describes which header names map to which fields for one kind of
// catalog sheet. Header matching is case-insensitive and ignores surrounding
// whitespace, so "Product Name" and " product name " are the same column.
type Profile struct {
	Name     string
	Required []field
	Aliases  map[field][]string
}

func (p Profile) lookup(header string) (field, bool) {
	h := normalizeHeader(header)

	for f, aliases := range p.Aliases {
		for _, a := range aliases {
			if h == a {
				return f, true
			}
		}
	}

	return "", false
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", " ", "-", " ", ".", "").Replace(s)

	return strings.Join(strings.Fields(s), " ")
}

var productProfile = Profile{
	Name:     "products",
	Required: []field{fieldName, fieldPrice},
	Aliases: map[field][]string{
		fieldName:        {"name", "product", "product name", "item", "item name", "उत्पाद", "नाम"},
		fieldPrice:       {"price", "mrp", "rate", "selling price", "कीमत", "मूल्य", "दाम"},
		fieldStock:       {"stock", "qty", "quantity", "in stock", "स्टॉक", "मात्रा"},
		fieldMinStock:    {"min stock", "minimum stock", "reorder level", "न्यूनतम स्टॉक"},
		fieldCategory:    {"category", "type", "श्रेणी"},
		fieldSKU:         {"sku", "code", "item code", "barcode"},
		fieldSupplier:    {"supplier", "vendor", "आपूर्तिकर्ता"},
		fieldDescription: {"description", "details", "विवरण"},
	},
}

var customerProfile = Profile{
	Name:     "customers",
	Required: []field{fieldName, fieldPhone},
	Aliases: map[field][]string{
		fieldName:         {"name", "customer", "customer name", "ग्राहक", "नाम"},
		fieldPhone:        {"phone", "mobile", "phone number", "mobile number", "contact", "फ़ोन", "फोन", "मोबाइल"},
		fieldEmail:        {"email", "e mail", "email id", "ईमेल"},
		fieldAddress:      {"address", "पता"},
		fieldBusinessType: {"business type", "business", "व्यवसाय"},
		fieldGSTNumber:    {"gst", "gstin", "gst number", "gst no"},
		fieldWhatsApp:     {"whatsapp", "whatsapp number", "व्हाट्सएप"},
	},
}
