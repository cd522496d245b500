package payload

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fptr(f float64) *float64 { return &f }

func TestExtractWeights(t *testing.T) {
	cases := []struct {
		name    string
		payload *string
		want    Weights
	}{
		{
			name:    "total weight with thousands separator",
			payload: ptr(`{"total_weight":"43,960"}`),
			want:    Weights{NetLbs: fptr(43960)},
		},
		{
			name:    "numeric alias",
			payload: ptr(`{"net_lbs":40000}`),
			want:    Weights{NetLbs: fptr(40000)},
		},
		{
			name:    "zero box sum falls through to weight block",
			payload: ptr(`{"box_numbers":"0,0","weight":"11842 (21,980)\n2008 (21,980)"}`),
			want:    Weights{NetLbs: fptr(13850), Box1: fptr(11842), Box2: fptr(2008)},
		},
		{
			name:    "box numbers summed",
			payload: ptr(`{"box_numbers":"11842,2008"}`),
			want:    Weights{NetLbs: fptr(13850), Box1: fptr(11842), Box2: fptr(2008)},
		},
		{
			name:    "box numbers as list",
			payload: ptr(`{"box_numbers":[100,"200",300]}`),
			want:    Weights{NetLbs: fptr(600), Box1: fptr(100), Box2: fptr(200)},
		},
		{
			name:    "unreadable total falls through to boxes",
			payload: ptr(`{"total_weight":"n/a","box_numbers":"10, 20"}`),
			want:    Weights{NetLbs: fptr(30), Box1: fptr(10), Box2: fptr(20)},
		},
		{
			name:    "free text weight block",
			payload: ptr(`{"weight":"11842 (21,980)\n2008 (21,980)\nscale ticket attached"}`),
			want:    Weights{NetLbs: fptr(13850), Box1: fptr(11842), Box2: fptr(2008)},
		},
		{
			name:    "zero total is absent",
			payload: ptr(`{"total_weight":"0"}`),
			want:    Weights{},
		},
		{
			name:    "no weight fields",
			payload: ptr(`{"status":"In Transit"}`),
			want:    Weights{},
		},
		{
			name:    "nil payload",
			payload: nil,
			want:    Weights{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ExtractWeights(tc.payload))
		})
	}
}

func TestToDecimal(t *testing.T) {
	d, ok := ToDecimal(Scalar{Kind: KindString, Text: " 43,960 lbs "})
	require.True(t, ok)
	require.Equal(t, "43960", d.String())

	_, ok = ToDecimal(Scalar{Kind: KindString, Text: "   "})
	require.False(t, ok)

	_, ok = ToDecimal(Scalar{Kind: KindBool, Text: "1"})
	require.False(t, ok)
}
