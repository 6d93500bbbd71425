package enum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaymentTypeValid(t *testing.T) {
	require.True(t, PaymentTypeCash.Valid())
	require.True(t, PaymentTypeCashless.Valid())
	require.False(t, PaymentType("voucher").Valid())
	require.False(t, PaymentType("").Valid())
	require.False(t, PaymentType("CASH").Valid())
}
