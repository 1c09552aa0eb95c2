package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncreaseEstimatesTotalMetric(t *testing.T) {
	known := testutil.ToFloat64(estimatesTotalMetric.WithLabelValues("true"))
	unknown := testutil.ToFloat64(estimatesTotalMetric.WithLabelValues("false"))

	IncreaseEstimatesTotalMetric(true)
	IncreaseEstimatesTotalMetric(true)
	IncreaseEstimatesTotalMetric(false)

	assert.Equal(t, known+2, testutil.ToFloat64(estimatesTotalMetric.WithLabelValues("true")))
	assert.Equal(t, unknown+1, testutil.ToFloat64(estimatesTotalMetric.WithLabelValues("false")))
}

func TestIncreaseInvalidInputsTotalMetric(t *testing.T) {
	before := testutil.ToFloat64(invalidInputsTotalMetric.WithLabelValues("unknown"))
	IncreaseInvalidInputsTotalMetric("")
	assert.Equal(t, before+1, testutil.ToFloat64(invalidInputsTotalMetric.WithLabelValues("unknown")))

	IncreaseInvalidInputsTotalMetric("systemSizeKw")
	assert.Equal(t, 1.0, testutil.ToFloat64(invalidInputsTotalMetric.WithLabelValues("systemSizeKw")))
}

func TestIncreaseLeadsTotalMetric(t *testing.T) {
	IncreaseLeadsTotalMetric("application")
	assert.Equal(t, 1.0, testutil.ToFloat64(leadsTotalMetric.WithLabelValues("application")))
}

func TestObserveNetCost(t *testing.T) {
	var before dto.Metric
	require.NoError(t, netCostMetric.Write(&before))

	ObserveNetCost(3270)

	var after dto.Metric
	require.NoError(t, netCostMetric.Write(&after))
	assert.Equal(t, before.GetHistogram().GetSampleCount()+1, after.GetHistogram().GetSampleCount())
	assert.InDelta(t, before.GetHistogram().GetSampleSum()+3270, after.GetHistogram().GetSampleSum(), 1e-9)
}
