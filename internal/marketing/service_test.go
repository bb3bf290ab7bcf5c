package marketing_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/vyaparx/internal/marketing"
	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

func TestService_CreateCampaign(t *testing.T) {
	tests := []struct {
		name      string
		params    marketing.CreateCampaignParams
		wantField string
	}{
		{
			name: "Success",
			params: marketing.CreateCampaignParams{
				Name:            "Holi Sale",
				Type:            merchant.CampaignSMS,
				Message:         "Flat 10% off",
				TargetCustomers: []string{"CUS001", "CUS002", "CUS001", ""},
			},
		},
		{
			name:      "MissingName",
			params:    marketing.CreateCampaignParams{Type: merchant.CampaignEmail, Message: "hi"},
			wantField: "Name",
		},
		{
			name:      "UnknownType",
			params:    marketing.CreateCampaignParams{Name: "x", Type: "Fax", Message: "hi"},
			wantField: "Type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.New(store.WithDemoData())
			svc := marketing.NewService(s)

			got, err := svc.CreateCampaign(context.Background(), tt.params)

			if tt.wantField != "" {
				var verrs validator.ValidationErrors
				require.ErrorAs(t, err, &verrs)
				assert.Equal(t, tt.wantField, verrs[0].Field())
				assert.Len(t, s.Snapshot().Campaigns, 1)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, merchant.CampaignDraft, got.Status)
			assert.Equal(t, []string{"CUS001", "CUS002"}, got.TargetCustomers)
			assert.Zero(t, got.SentCount)

			st := s.Snapshot()
			assert.Len(t, st.Campaigns, 2)
			assert.Equal(t, "Holi Sale campaign has been created", st.Notifications[0].Message)
		})
	}
}

func TestAllCustomerIDs(t *testing.T) {
	st := store.New(store.WithDemoData()).Snapshot()

	assert.Equal(t, []string{"CUS001", "CUS002", "CUS003", "CUS004", "CUS005"}, marketing.AllCustomerIDs(st))
}

func TestToggleTarget(t *testing.T) {
	targets := marketing.ToggleTarget(nil, "CUS001")
	targets = marketing.ToggleTarget(targets, "CUS002")
	assert.Equal(t, []string{"CUS001", "CUS002"}, targets)

	targets = marketing.ToggleTarget(targets, "CUS001")
	assert.Equal(t, []string{"CUS002"}, targets)
}
