package calculator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketDashboard/internal/model"
)

func TestAnnotate_InsufficientHistory(t *testing.T) {
	_, err := Annotate(linearSeries(29))
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInsufficientHistory))

	var ih *model.InsufficientHistoryError
	require.True(t, errors.As(err, &ih))
	assert.Equal(t, 30, ih.Need)
	assert.Equal(t, 29, ih.Got)
	assert.Equal(t, "ichimoku", ih.Path)
}

func TestAnnotate_Aligned(t *testing.T) {
	a, err := Annotate(linearSeries(60))
	require.NoError(t, err)

	assert.Equal(t, 60, a.Len())
	for _, col := range [][]float64{a.Tenkan, a.Kijun, a.SenkouA, a.SenkouB, a.Chikou, a.RSI} {
		assert.Len(t, col, 60)
	}
	assert.Nil(t, a.SMA20)
	assertClose(t, "rsi", model.At(a.RSI, -1), 100, 1e-9)
}

func TestAnnotateGeneric(t *testing.T) {
	_, err := AnnotateGeneric(linearSeries(199))
	var ih *model.InsufficientHistoryError
	require.True(t, errors.As(err, &ih))
	assert.Equal(t, "sma", ih.Path)
	assert.Equal(t, 200, ih.Need)

	a, err := AnnotateGeneric(linearSeries(200))
	require.NoError(t, err)
	assertClose(t, "sma20", model.At(a.SMA20, -1), 190, 1e-9)
	assertClose(t, "sma200", model.At(a.SMA200, -1), 100, 1e-9)
}
