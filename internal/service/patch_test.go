package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/animal-shelter/internal/apperror"
)

type sample struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func TestApplyPatch(t *testing.T) {
	cur := sample{Name: "Rex", Age: 3}
	tests := []struct {
		name    string
		patch   Patch
		want    sample
		wantErr bool
	}{
		{"merge object", Patch{Body: []byte(`{"age":4}`)}, sample{"Rex", 4}, false},
		{"merge null zeroes", Patch{Body: []byte(`{"name":null}`)}, sample{"", 3}, false},
		{"json patch by body", Patch{Body: []byte(`[{"op":"replace","path":"/age","value":9}]`)}, sample{"Rex", 9}, false},
		{"json patch by media type", Patch{ContentType: "application/json-patch+json; charset=utf-8", Body: []byte(` [{"op":"remove","path":"/name"}]`)}, sample{"", 3}, false},
		{"failed test op", Patch{Body: []byte(`[{"op":"test","path":"/age","value":1}]`)}, sample{}, true},
		{"unknown member", Patch{Body: []byte(`{"color":"brown"}`)}, sample{}, true},
		{"wrong type", Patch{Body: []byte(`{"age":"old"}`)}, sample{}, true},
		{"empty", Patch{}, sample{}, true},
		{"garbage", Patch{Body: []byte(`{`)}, sample{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applyPatch(cur, tt.patch)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
