package splitser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const testListID = "3ace0ff4-0229-4b05-8b25-f01684c44f57"

const testPageBody = `{
  "pagination": {"total_pages": 1, "offset": 0, "per_page": 100, "total_entries": 1, "current_page": 2},
  "sorting": {"fields": [{"payed_on": "desc"}], "sortable_fields": ["payed_on", "created_at"]},
  "filter": {"settled": "false"},
  "permissions": {"index": true, "create": true},
  "data": [
    {
      "permissions": {"index": true, "create": true},
      "expense": {
        "id": "e1",
        "name": "Tacos",
        "list_id": "3ace0ff4-0229-4b05-8b25-f01684c44f57",
        "settle_id": null,
        "payed_by_member_instance_id": null,
        "status": "activate",
        "payed_on": "2023-11-14",
        "exchange_rate": "1.0",
        "payed_by_id": "8a139487-9be6-4eaf-8e4e-0c2cdb2083e3",
        "category": null,
        "created_at": 1700000000,
        "updated_at": 1700000001,
        "source_amount": {"currency": "EUR", "fractional": 1005},
        "amount": {"currency": "EUR", "fractional": 1005},
        "shares": [
          {"share": {
            "id": "s1",
            "meta": {"type": "equal", "multiplier": 1},
            "member_instance_id": null,
            "member_id": "8a139487-9be6-4eaf-8e4e-0c2cdb2083e3",
            "member_instance": null,
            "source_amount": {"currency": "EUR", "fractional": 1005},
            "amount": {"currency": "EUR", "fractional": 1005}
          }}
        ],
        "recurring_task": null,
        "image": null
      }
    }
  ]
}`

func testRequest() PageRequest {
	return PageRequest{
		ListID:  testListID,
		Page:    2,
		PerPage: 100,
		Sort:    DefaultSort(),
		Settled: false,
	}
}

func TestGetPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if want := "/api/lists/" + testListID + "/list_items"; r.URL.Path != want {
			t.Errorf("path = %s, want %s", r.URL.Path, want)
		}

		q := r.URL.Query()
		for param, want := range map[string]string{
			"page":             "2",
			"per_page":         "100",
			"sort[payed_on]":   "desc",
			"sort[created_at]": "desc",
			"filter[settled]":  "false",
		} {
			if got := q.Get(param); got != want {
				t.Errorf("query %s = %q, want %q", param, got, want)
			}
		}

		for header, want := range map[string]string{
			"accept":          "application/json",
			"accept-language": "en",
			"accept-version":  "10",
			"cookie":          "session=abc",
		} {
			if got := r.Header.Get(header); got != want {
				t.Errorf("header %s = %q, want %q", header, got, want)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(testPageBody))
	}))
	defer srv.Close()

	client := &Client{BaseURL: srv.URL + "/api", Cookie: "session=abc", HTTPClient: srv.Client()}

	page, err := client.GetPage(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("GetPage() failed: %v", err)
	}

	if page.Pagination.CurrentPage != 2 {
		t.Errorf("CurrentPage = %d, want 2", page.Pagination.CurrentPage)
	}
	if len(page.Data) != 1 {
		t.Fatalf("got %d data items, want 1", len(page.Data))
	}
	exp := page.Data[0].Expense
	if exp == nil {
		t.Fatal("expected an expense on the first data item")
	}
	if exp.ID != "e1" || exp.Amount.Fractional != 1005 || exp.CreatedAt != 1700000000 {
		t.Errorf("expense fields wrong: %+v", exp)
	}
	if exp.SettleID != nil {
		t.Errorf("SettleID = %v, want nil", *exp.SettleID)
	}
	if len(exp.Shares) != 1 || exp.Shares[0].Share.MemberID != "8a139487-9be6-4eaf-8e4e-0c2cdb2083e3" {
		t.Errorf("shares decoded wrong: %+v", exp.Shares)
	}
	if len(page.RawData) == 0 {
		t.Error("RawData should retain the verbatim data bytes")
	}
}

func TestGetPage_InvalidListID(t *testing.T) {
	client := NewClient("session=abc")
	req := testRequest()
	req.ListID = "not-a-uuid"

	if _, err := client.GetPage(context.Background(), req); err == nil {
		t.Fatal("Expected error for invalid list id, got nil")
	}
}

func TestGetPage_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := &Client{BaseURL: srv.URL + "/api", Cookie: "expired", HTTPClient: srv.Client()}

	if _, err := client.GetPage(context.Background(), testRequest()); err == nil {
		t.Fatal("Expected error for non-200 status, got nil")
	}
}
