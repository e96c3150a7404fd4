package currency

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	require.Equal(t, 4500.0, Normalize(50, 90))
	require.Equal(t, 0.0, Normalize(0, 90))
	require.Equal(t, 250.0, Normalize(250, 1))
}

func TestNormalizeLinearity(t *testing.T) {
	a1, a2, r := 120.0, 80.0, 72.5
	require.Equal(t, Normalize(a1, r)+Normalize(a2, r), Normalize(a1+a2, r))
	require.Equal(t, 2*Normalize(a1, r), Normalize(a1, 2*r))
}

func TestNormalizeDoesNotCorrectZeroRate(t *testing.T) {
	// Missing rate is a data-entry defect; it must surface, not become 1.
	require.Equal(t, 0.0, Normalize(500, 0))
}

func TestNewConverter(t *testing.T) {
	conv, err := NewConverter([]Currency{
		{Code: "AFN", Name: "Afghani", IsBase: true, Rate: 1},
		{Code: "USD", Name: "US Dollar", Rate: 72},
	})
	require.NoError(t, err)
	require.Equal(t, "AFN", conv.Base().Code)

	rate, ok := conv.Rate("USD")
	require.True(t, ok)
	require.Equal(t, 72.0, rate)

	_, ok = conv.Rate("EUR")
	require.False(t, ok)

	require.Len(t, conv.List(), 2)
}

func TestNewConverterRequiresExactlyOneBase(t *testing.T) {
	_, err := NewConverter([]Currency{{Code: "USD", Rate: 72}})
	require.ErrorIs(t, err, ErrNoBase)

	_, err = NewConverter([]Currency{
		{Code: "AFN", IsBase: true, Rate: 1},
		{Code: "USD", IsBase: true, Rate: 1},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "multiple base currencies")
}

func TestNewConverterRejectsBaseRateOtherThanOne(t *testing.T) {
	_, err := NewConverter([]Currency{{Code: "AFN", IsBase: true, Rate: 72}})
	require.Error(t, err)
}
