package intake_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/vyaparx/internal/intake"
	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

var now = time.Date(2025, 6, 1, 18, 45, 0, 0, time.UTC)

func newService() (*intake.Service, *store.Store) {
	s := store.New(
		store.WithDemoData(),
		store.WithClock(func() time.Time { return now }),
		store.WithIDGenerator(store.SequentialIDs()),
	)

	return intake.NewService(s), s
}

func TestService_CreateLead(t *testing.T) {
	tests := []struct {
		name    string
		params  intake.CreateLeadParams
		wantErr bool
	}{
		{
			name:   "Success",
			params: intake.CreateLeadParams{CustomerPhone: " +91 91234 56789 ", CustomerName: "Meera", Message: "Need 10kg sugar"},
		},
		{
			name:    "MissingPhone",
			params:  intake.CreateLeadParams{Message: "hello"},
			wantErr: true,
		},
		{
			name:    "BlankMessage",
			params:  intake.CreateLeadParams{CustomerPhone: "+91 91234 56789", Message: "   "},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, s := newService()

			got, err := svc.CreateLead(context.Background(), tt.params)

			if tt.wantErr {
				var verrs validator.ValidationErrors
				assert.ErrorAs(t, err, &verrs)
				assert.Len(t, s.Snapshot().WhatsAppLeads, 1)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "+91 91234 56789", got.CustomerPhone)
			assert.Equal(t, merchant.LeadNew, got.Status)
			assert.Equal(t, now, got.Timestamp)
			assert.Len(t, s.Snapshot().WhatsAppLeads, 2)
		})
	}
}

func TestService_SetLeadStatus(t *testing.T) {
	svc, s := newService()

	require.NoError(t, svc.SetLeadStatus(context.Background(), "LEAD001", merchant.LeadConverted))
	assert.Equal(t, merchant.LeadConverted, s.Snapshot().WhatsAppLeads[0].Status)

	assert.ErrorIs(t, svc.SetLeadStatus(context.Background(), "LEAD404", merchant.LeadClosed), intake.ErrLeadNotFound)
	assert.Error(t, svc.SetLeadStatus(context.Background(), "LEAD001", "Spam"))
}

func TestLeadPriority(t *testing.T) {
	tests := []struct {
		age  time.Duration
		want intake.Priority
	}{
		{10 * time.Minute, intake.PriorityHigh},
		{3 * time.Hour, intake.PriorityMedium},
		{30 * time.Hour, intake.PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.age.String(), func(t *testing.T) {
			lead := merchant.WhatsAppLead{WhatsAppLeadInput: merchant.WhatsAppLeadInput{Timestamp: now.Add(-tt.age)}}
			assert.Equal(t, tt.want, intake.LeadPriority(lead, now))
		})
	}
}

func TestService_CreateRequirement(t *testing.T) {
	type testCase struct {
		name    string
		params  intake.CreateRequirementParams
		wantErr error
	}

	milk := merchant.RequirementItem{ProductName: "Milk", Quantity: 2, Unit: "liters", EstimatedPrice: new(decimal.NewFromInt(60))}
	bread := merchant.RequirementItem{ProductName: " Bread ", Quantity: 4, Unit: "packets", EstimatedPrice: new(decimal.NewFromInt(120))}
	blank := merchant.RequirementItem{ProductName: "  ", Quantity: 1, Unit: "kg"}

	tests := []testCase{
		{
			name: "Success",
			params: intake.CreateRequirementParams{
				CustomerID: "CUS004",
				Items:      []merchant.RequirementItem{milk, blank, bread},
				Source:     merchant.SourceCall,
				Notes:      "before 9am",
			},
		},
		{
			name: "OnlyBlankItems",
			params: intake.CreateRequirementParams{
				CustomerID: "CUS004",
				Items:      []merchant.RequirementItem{blank},
				Source:     merchant.SourceCall,
			},
			wantErr: intake.ErrNoItems,
		},
		{
			name: "UnknownCustomer",
			params: intake.CreateRequirementParams{
				CustomerID: "CUS404",
				Items:      []merchant.RequirementItem{milk},
				Source:     merchant.SourceApp,
			},
			wantErr: intake.ErrCustomerNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService()

			got, err := svc.CreateRequirement(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Sunita Devi", got.CustomerName)
			assert.Equal(t, merchant.RequirementPending, got.Status)
			assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), got.RequestDate)
			require.Len(t, got.Items, 2)
			assert.Equal(t, "Bread", got.Items[1].ProductName)
			require.NotNil(t, got.TotalAmount)
			assert.Equal(t, "180", got.TotalAmount.String())
		})
	}
}

func TestService_SetRequirementStatus(t *testing.T) {
	svc, s := newService()

	require.NoError(t, svc.SetRequirementStatus(context.Background(), "REQ001", merchant.RequirementQuoted))
	assert.Equal(t, merchant.RequirementQuoted, s.Snapshot().DailyRequirements[0].Status)

	assert.ErrorIs(t, svc.SetRequirementStatus(context.Background(), "REQ404", merchant.RequirementPaid), intake.ErrRequirementNotFound)
}

func TestEstimatedTotal(t *testing.T) {
	assert.Nil(t, intake.EstimatedTotal([]merchant.RequirementItem{{ProductName: "Salt"}}))
}
