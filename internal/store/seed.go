package store

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/vyaparx/internal/i18n"
	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}

	return t
}

func rupees(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func item(productID, name string, qty int, price int64) merchant.InvoiceItem {
	it := merchant.InvoiceItem{ProductID: productID, ProductName: name, Quantity: qty, Price: rupees(price)}
	it.Recalculate()

	return it
}

// seedDemoData fills st with the sample shop used for demos. Relative dates
// such as a customer's last purchase are computed from now.
func seedDemoData(st *State, now time.Time, lang i18n.Language) {
	daysAgo := func(n int) *time.Time { return new(now.AddDate(0, 0, -n)) }

	st.Customers = []merchant.Customer{
		{ID: "CUS001", CreatedAt: day("2024-01-15"), CustomerInput: merchant.CustomerInput{
			Name: "Rajesh Kumar Sharma", Phone: "+91 98765 43210", Email: "rajesh.sharma@email.com",
			Address:        "Shop No. 15, Karol Bagh Market, New Delhi - 110005",
			TotalPurchases: rupees(125680), LastPurchase: daysAgo(2), Status: merchant.CustomerActive,
			WhatsAppNumber: "+91 98765 43210", BusinessType: "Retail Store", GSTNumber: "07AAAAA0000A1Z5",
		}},
		{ID: "CUS002", CreatedAt: day("2024-01-10"), CustomerInput: merchant.CustomerInput{
			Name: "Priya Patel", Phone: "+91 87654 32109", Email: "priya.patel@email.com",
			Address:        "B-12, Commercial Complex, Andheri West, Mumbai - 400058",
			TotalPurchases: rupees(89450), LastPurchase: daysAgo(7), Status: merchant.CustomerActive,
			WhatsAppNumber: "+91 87654 32109", BusinessType: "Beauty Salon", GSTNumber: "27BBBBB1111B2Z6",
		}},
		{ID: "CUS003", CreatedAt: day("2024-01-08"), CustomerInput: merchant.CustomerInput{
			Name: "Mohammed Iqbal", Phone: "+91 76543 21098", Email: "mohammed.iqbal@email.com",
			Address:        "Shop 8, Charminar Market, Hyderabad - 500002",
			TotalPurchases: rupees(67890), LastPurchase: daysAgo(3), Status: merchant.CustomerActive,
			WhatsAppNumber: "+91 76543 21098", BusinessType: "Electronics Store",
		}},
		{ID: "CUS004", CreatedAt: day("2024-01-05"), CustomerInput: merchant.CustomerInput{
			Name: "Sunita Devi", Phone: "+91 65432 10987", Email: "sunita.devi@email.com",
			Address:        "Kirana Store, Main Road, Patna - 800001",
			TotalPurchases: rupees(45230), LastPurchase: daysAgo(5), Status: merchant.CustomerActive,
			WhatsAppNumber: "+91 65432 10987", BusinessType: "Grocery Store",
		}},
		{ID: "CUS005", CreatedAt: day("2024-01-12"), CustomerInput: merchant.CustomerInput{
			Name: "Arjun Reddy", Phone: "+91 54321 09876", Email: "arjun.reddy@email.com",
			Address:        "Medical Store, Gandhi Nagar, Bangalore - 560009",
			TotalPurchases: rupees(156780), LastPurchase: daysAgo(1), Status: merchant.CustomerActive,
			WhatsAppNumber: "+91 54321 09876", BusinessType: "Pharmacy",
		}},
	}

	st.Products = []merchant.Product{
		{ID: "PRD001", ProductInput: merchant.ProductInput{
			Name: "Tata Tea Premium", Price: rupees(250), Stock: 100, Category: "Beverages",
			Description: "Premium quality Assam tea blend", SKU: "TT001", MinStock: 20, Supplier: "Tata Consumer Products",
		}},
		{ID: "PRD002", ProductInput: merchant.ProductInput{
			Name: "India Gate Basmati Rice", Price: rupees(180), Stock: 50, Category: "Grains",
			Description: "Premium aged basmati rice 1kg", SKU: "IG002", MinStock: 10, Supplier: "KRBL Limited",
		}},
		{ID: "PRD003", ProductInput: merchant.ProductInput{
			Name: "Amul Butter", Price: rupees(60), Stock: 75, Category: "Dairy",
			Description: "Fresh salted butter 100g", SKU: "AM003", MinStock: 15, Supplier: "Amul",
		}},
		{ID: "PRD004", ProductInput: merchant.ProductInput{
			Name: "Patanjali Atta", Price: rupees(45), Stock: 120, Category: "Flour",
			Description: "Whole wheat flour 1kg", SKU: "PT004", MinStock: 25, Supplier: "Patanjali Ayurved",
		}},
		{ID: "PRD005", ProductInput: merchant.ProductInput{
			Name: "Maggi Noodles", Price: rupees(14), Stock: 200, Category: "Instant Food",
			Description: "Masala instant noodles 70g", SKU: "MG005", MinStock: 50, Supplier: "Nestle India",
		}},
	}

	paidItems := []merchant.InvoiceItem{
		item("PRD001", "Tata Tea Premium", 2, 250),
		item("PRD003", "Amul Butter", 3, 60),
	}
	sentItems := []merchant.InvoiceItem{
		item("PRD002", "India Gate Basmati Rice", 1, 180),
	}

	st.Invoices = []merchant.Invoice{
		{ID: "INV001", CreatedAt: day("2024-01-20"), InvoiceInput: merchant.InvoiceInput{
			CustomerID: "CUS001", CustomerName: "Rajesh Kumar Sharma",
			Items: paidItems, Total: merchant.CalculateTotal(paidItems),
			Status: merchant.InvoicePaid, DueDate: day("2024-02-20"), PaymentMethod: merchant.MethodUPI,
			PaymentStatus: merchant.PaymentStatePaid, DeliveryStatus: merchant.DeliveryStateDelivered,
		}},
		{ID: "INV002", CreatedAt: day("2024-01-21"), InvoiceInput: merchant.InvoiceInput{
			CustomerID: "CUS002", CustomerName: "Priya Patel",
			Items: sentItems, Total: merchant.CalculateTotal(sentItems),
			Status: merchant.InvoiceSent, DueDate: day("2024-02-21"),
			PaymentStatus: merchant.PaymentStatePending, DeliveryStatus: merchant.DeliveryStatePending,
		}},
	}

	st.Payments = []merchant.Payment{
		{ID: "PAY001", CreatedAt: day("2024-01-20"), PaymentInput: merchant.PaymentInput{
			InvoiceID: "INV001", CustomerID: "CUS001", Amount: rupees(680), Method: merchant.MethodUPI,
			Status: merchant.PaymentSuccess, TransactionID: "UPI123456789", Gateway: "PhonePe",
		}},
	}

	st.DeliveryOrders = []merchant.DeliveryOrder{
		{ID: "DEL001", CreatedAt: day("2024-01-20"), DeliveryOrderInput: merchant.DeliveryOrderInput{
			InvoiceID: "INV001", CustomerID: "CUS001",
			Items:   []merchant.InvoiceItem{item("PRD001", "Tata Tea Premium", 2, 250)},
			Partner: merchant.PartnerDunzo, Status: merchant.DeliveryDelivered, TrackingID: "DUN123456",
			EstimatedDelivery: new(day("2024-01-21")), ActualDelivery: new(day("2024-01-21")),
		}},
	}

	st.DailyRequirements = []merchant.DailyRequirement{
		{ID: "REQ001", DailyRequirementInput: merchant.DailyRequirementInput{
			CustomerID: "CUS001", CustomerName: "Rajesh Kumar Sharma",
			Items: []merchant.RequirementItem{
				{ProductName: "Milk", Quantity: 2, Unit: "liters", EstimatedPrice: new(rupees(60))},
				{ProductName: "Bread", Quantity: 4, Unit: "packets", EstimatedPrice: new(rupees(120))},
			},
			RequestDate: day("2024-01-22"), Status: merchant.RequirementPending,
			Source: merchant.SourceWhatsApp, Notes: "Regular daily order",
		}},
	}

	st.WhatsAppLeads = []merchant.WhatsAppLead{
		{ID: "LEAD001", WhatsAppLeadInput: merchant.WhatsAppLeadInput{
			CustomerPhone: "+91 99999 88888", CustomerName: "Amit Singh",
			Message:   "Hi, I need 5kg rice and 2kg dal. Can you deliver today?",
			Timestamp: now, Status: merchant.LeadNew,
		}},
	}

	st.Campaigns = []merchant.Campaign{
		{ID: "CMP001", CreatedAt: day("2024-01-15"), CampaignInput: merchant.CampaignInput{
			Name: "Diwali Special Offers", Type: merchant.CampaignWhatsApp, Status: merchant.CampaignActive,
			TargetCustomers: []string{"CUS001", "CUS002", "CUS003"},
			Message:         "Special Diwali discounts! Get 20% off on all products. Valid till 31st Oct.",
			SentCount:       150, DeliveredCount: 145, ReadCount: 89,
		}},
	}

	st.Notifications = []merchant.Notification{
		{ID: "NTF001", CreatedAt: now, NotificationInput: merchant.NotificationInput{
			Title:   i18n.T(lang, i18n.MsgWelcome),
			Message: i18n.T(lang, i18n.MsgWelcomeBody),
			Type:    merchant.NotificationInfo,
		}},
	}
}
