package forms

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func decodeForm(t *testing.T, dst interface{}, values url.Values) map[string]string {
	t.Helper()
	req := httptest.NewRequest("POST", "/x", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	fields, err := Decode(req, dst)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return fields
}

func TestDecode_LoginValid(t *testing.T) {
	var f Login
	fields := decodeForm(t, &f, url.Values{
		"email":       {"alice@example.com"},
		"password":    {"secret"},
		"remember_me": {"true"},
	})
	if len(fields) != 0 {
		t.Fatalf("unexpected field errors: %v", fields)
	}
	if f.Email != "alice@example.com" || f.Password != "secret" || !f.RememberMe {
		t.Errorf("unexpected form: %+v", f)
	}
}

func TestDecode_LoginInvalid(t *testing.T) {
	var f Login
	fields := decodeForm(t, &f, url.Values{
		"email": {"not-an-email"},
	})
	if fields["email"] == "" {
		t.Error("expected error on email")
	}
	if fields["password"] == "" {
		t.Error("expected error on password")
	}
}

func TestDecode_RegisterValid(t *testing.T) {
	var f Register
	fields := decodeForm(t, &f, url.Values{
		"first_name": {"Alice"},
		"last_name":  {"Smith"},
		"username":   {"alice"},
		"email":      {"alice@example.com"},
		"url":        {"https://alice.example.com"},
		"age":        {"30"},
		"bio":        {"hi"},
		"password":   {"secret1"},
	})
	if len(fields) != 0 {
		t.Fatalf("unexpected field errors: %v", fields)
	}
	if f.Age != 30 {
		t.Errorf("age: got %d, want 30", f.Age)
	}
}

func TestDecode_RegisterErrorsKeyedBySubmittedName(t *testing.T) {
	var f Register
	fields := decodeForm(t, &f, url.Values{
		"first_name": {"Alice"},
		"username":   {"al"},
		"email":      {"alice@example.com"},
		"password":   {"short"},
	})
	for _, name := range []string{"last_name", "username", "password"} {
		if fields[name] == "" {
			t.Errorf("expected error keyed %q, got %v", name, fields)
		}
	}
	if fields["FirstName"] != "" || fields["LastName"] != "" {
		t.Errorf("errors keyed by Go field name: %v", fields)
	}
}

func TestDecode_ContactRequired(t *testing.T) {
	var f Contact
	fields := decodeForm(t, &f, url.Values{})
	for _, name := range []string{"name", "email", "message"} {
		if fields[name] == "" {
			t.Errorf("expected error on %q", name)
		}
	}
}

func TestDecode_PostRequiresTweet(t *testing.T) {
	var f Post
	fields := decodeForm(t, &f, url.Values{})
	if fields["tweet"] == "" {
		t.Error("expected error on tweet")
	}

	var ok Post
	fields = decodeForm(t, &ok, url.Values{"tweet": {"hello"}})
	if len(fields) != 0 {
		t.Errorf("unexpected field errors: %v", fields)
	}
}
