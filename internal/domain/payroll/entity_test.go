package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayslipCanApprove(t *testing.T) {
	tests := []struct {
		name          string
		payslipStatus PayslipStatus
		payrunStatus  PayrunStatus
		wantErr       error
	}{
		{"pending payslip in processing payrun", PayslipStatusPending, PayrunStatusProcessing, nil},
		{"completed payrun rejects approval", PayslipStatusPending, PayrunStatusCompleted, ErrPayrunAlreadyCompleted},
		{"processed payslip cannot be approved twice", PayslipStatusProcessed, PayrunStatusProcessing, ErrPayslipAlreadyProcessed},
		{"paid payslip cannot be approved", PayslipStatusPaid, PayrunStatusProcessing, ErrPayslipAlreadyProcessed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Payslip{Status: tt.payslipStatus}.CanApprove(tt.payrunStatus)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestAllSettled(t *testing.T) {
	assert.False(t, AllSettled(nil))
	assert.False(t, AllSettled([]Payslip{}))

	assert.False(t, AllSettled([]Payslip{
		{Status: PayslipStatusProcessed},
		{Status: PayslipStatusPending},
	}))

	assert.True(t, AllSettled([]Payslip{
		{Status: PayslipStatusProcessed},
		{Status: PayslipStatusPaid},
	}))

	assert.False(t, AllSettled([]Payslip{
		{Status: PayslipStatusProcessed},
		{Status: PayslipStatusCancelled},
	}))
}
