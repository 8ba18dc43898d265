package util

import (
	"reflect"
	"testing"
)

func TestExpandVLANRange(t *testing.T) {
	tests := []struct {
		spec    string
		want    []int
		wantErr bool
	}{
		{"", nil, false},
		{"20", []int{20}, false},
		{"20,30", []int{20, 30}, false},
		{"100-103", []int{100, 101, 102, 103}, false},
		{"100-102,200,300-301", []int{100, 101, 102, 200, 300, 301}, false},
		{"30,20,30", []int{20, 30}, false}, // sorted and deduplicated
		{"abc", nil, true},
		{"10-5", nil, true},
		{"4095", nil, true}, // out of 802.1Q range
		{"0", nil, true},
	}

	for _, tt := range tests {
		got, err := ExpandVLANRange(tt.spec)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ExpandVLANRange(%q) expected error, got %v", tt.spec, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ExpandVLANRange(%q) unexpected error: %v", tt.spec, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ExpandVLANRange(%q) = %v, want %v", tt.spec, got, tt.want)
		}
	}
}

func TestCompactRange(t *testing.T) {
	tests := []struct {
		values []int
		want   string
	}{
		{nil, ""},
		{[]int{10}, "10"},
		{[]int{10, 20, 30}, "10,20,30"},
		{[]int{1, 2, 3, 5, 7, 8, 9}, "1-3,5,7-9"},
		{[]int{3, 1, 2, 2}, "1-3"}, // unsorted with duplicates
	}

	for _, tt := range tests {
		if got := CompactRange(tt.values); got != tt.want {
			t.Errorf("CompactRange(%v) = %q, want %q", tt.values, got, tt.want)
		}
	}
}

func TestValidateVLANID(t *testing.T) {
	if err := ValidateVLANID(1); err != nil {
		t.Errorf("VLAN 1 should be valid: %v", err)
	}
	if err := ValidateVLANID(4094); err != nil {
		t.Errorf("VLAN 4094 should be valid: %v", err)
	}
	if err := ValidateVLANID(0); err == nil {
		t.Error("VLAN 0 should be rejected")
	}
	if err := ValidateVLANID(4095); err == nil {
		t.Error("VLAN 4095 should be rejected")
	}
}
