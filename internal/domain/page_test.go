package domain

import (
	"encoding/json"
	"testing"
)

func TestPageDecodesMixedTypes(t *testing.T) {
	raw := `{"previous":null,"current":"2","next":"3","total":7,"size":"10","records":{"total":64,"onPage":10}}`
	var p Page
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Previous != 0 || p.Current != 2 || p.Next != 3 || p.Total != 7 || p.Size != 10 {
		t.Fatalf("unexpected page %+v", p)
	}
	if p.Records.Total != 64 || p.Records.OnPage != 10 {
		t.Fatalf("unexpected records %+v", p.Records)
	}
}

func TestFlexIntRejectsGarbage(t *testing.T) {
	var f FlexInt
	if err := json.Unmarshal([]byte(`"abc"`), &f); err == nil {
		t.Fatalf("expected error for non-numeric string")
	}
}

func TestFlexStringAcceptsNumbers(t *testing.T) {
	var u User
	if err := json.Unmarshal([]byte(`{"id":"u1","rating":4.5,"totalRides":"12","status":"active"}`), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if u.Rating != "4.5" || u.TotalRides != 12 || u.Status != UserStatusActive {
		t.Fatalf("unexpected user %+v", u)
	}
}

func TestParseUserKind(t *testing.T) {
	cases := map[string]UserKind{"rental": UserKindRental, "customers": UserKindRental, "taxi": UserKindTaxi, "billing": UserKindTaxi}
	for in, want := range cases {
		got, ok := ParseUserKind(in)
		if !ok || got != want {
			t.Fatalf("%s: got %s/%v", in, got, ok)
		}
	}
	if _, ok := ParseUserKind("scooter"); ok {
		t.Fatalf("unknown kind accepted")
	}
	if UserKindTaxi.Resource() != "billings" || UserKindRental.Resource() != "customers" {
		t.Fatalf("unexpected cache resources")
	}
}
