package util

import (
	"reflect"
	"testing"
)

func TestSplitCommaSeparated(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"Eth1/1", []string{"Eth1/1"}},
		{"Eth1/1,Eth1/2", []string{"Eth1/1", "Eth1/2"}},
		{" Eth1/1 , Eth1/2 ", []string{"Eth1/1", "Eth1/2"}},
		{"Eth1/1,,Eth1/2,", []string{"Eth1/1", "Eth1/2"}},
	}

	for _, tt := range tests {
		got := SplitCommaSeparated(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitCommaSeparated(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestStripAnnotation(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Eth1/1(P)", "Eth1/1"},
		{"Eth1/2(D)", "Eth1/2"},
		{"Eth1/3", "Eth1/3"},
		{"Po12(SU)", "Po12"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := StripAnnotation(tt.input); got != tt.want {
			t.Errorf("StripAnnotation(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
