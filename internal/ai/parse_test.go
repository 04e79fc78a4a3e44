package ai

import (
	"testing"

	"github.com/rach2103/moviereview/internal/types"
)

func TestStripFence(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"NoFence", `{"a":1}`, `{"a":1}`},
		{"JsonFence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"BareFence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"LeadingWhitespace", "  \n```json\n[1,2]\n```  ", `[1,2]`},
		{"UnclosedFence", "```json\n{\"a\":1}", `{"a":1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripFence(tc.input); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestParseJSONResponse(t *testing.T) {
	t.Run("ValidPayload", func(t *testing.T) {
		r := parseJSONResponse("```json\n{\"success\":true,\"newAverageRating\":4.5}\n```", ReviewAck{})
		if r.fellBack {
			t.Fatal("Expected live parse, got fallback")
		}
		if !r.value.Success || r.value.NewAverageRating != 4.5 {
			t.Errorf("Unexpected value: %+v", r.value)
		}
	})

	t.Run("MalformedPayload", func(t *testing.T) {
		fallback := ReviewAck{Success: true, NewAverageRating: 4.2}
		r := parseJSONResponse("the model apologizes and cannot comply", fallback)
		if !r.fellBack {
			t.Fatal("Expected fallback for malformed payload")
		}
		if r.value != fallback {
			t.Errorf("Expected fallback value, got %+v", r.value)
		}
	})

	t.Run("SingleObjectWhereListExpected", func(t *testing.T) {
		r := parseJSONResponse(`{"id":"m-1","title":"Solo"}`, types.FlexList[wireMovie](nil))
		if r.fellBack {
			t.Fatal("Expected object to decode as single-element list")
		}
		movies := r.value.Slice()
		if len(movies) != 1 || movies[0].Title != "Solo" {
			t.Errorf("Unexpected movies: %+v", movies)
		}
	})

	t.Run("QuotedNumbers", func(t *testing.T) {
		r := parseJSONResponse(`[{"id":"m-1","title":"Quoted","releaseYear":"1994","averageRating":4.8}]`, types.FlexList[wireMovie](nil))
		if r.fellBack {
			t.Fatalf("Expected quoted releaseYear to decode")
		}
		movies := r.value.Slice()
		if movies[0].ReleaseYear.Int() != 1994 {
			t.Errorf("Expected releaseYear 1994, got %d", movies[0].ReleaseYear.Int())
		}
	})
}
