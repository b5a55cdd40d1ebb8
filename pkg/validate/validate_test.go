package validate_test

import (
	"testing"

	"github.com/aamirkhan2478/elite-market-backend/pkg/validate"
)

type signupInput struct {
	Name     string `json:"name"     validate:"required,regex=^[A-Za-z ]{3,20}$" message:"Name should have at least 3 characters and should not any number!"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Mobile   string `json:"mobile"   validate:"required,digits=11"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(signupInput{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "Secret@123",
		Mobile:   "03001234567",
	})
	if errs.Any() {
		t.Errorf("expected no errors, got: %v", errs.Fields())
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(signupInput{})
	if !errs.Any() {
		t.Fatal("expected required errors")
	}
	fields := errs.Fields()
	if _, ok := fields["name"]; !ok {
		t.Error("expected name to be required")
	}
	if _, ok := fields["email"]; !ok {
		t.Error("expected email to be required")
	}
}

func TestFirstFollowsDeclarationOrder(t *testing.T) {
	errs := validate.Struct(signupInput{Email: "john@example.com"})
	if got := errs.First(); got != "Name should have at least 3 characters and should not any number!" {
		t.Errorf("expected the name message first, got: %q", got)
	}
}

func TestMessageOverride(t *testing.T) {
	errs := validate.Struct(signupInput{
		Name:     "J0hn",
		Email:    "john@example.com",
		Password: "Secret@123",
		Mobile:   "03001234567",
	})
	if got := errs.First(); got != "Name should have at least 3 characters and should not any number!" {
		t.Errorf("expected override message, got: %q", got)
	}
}

func TestPasswordRule(t *testing.T) {
	type in struct {
		Password string `json:"password" validate:"required,password"`
	}
	cases := []struct {
		password string
		ok       bool
	}{
		{"Secret@123", true},
		{"no digits here!", false}, // missing digit and symbol outside set
		{"12345678", false},        // no letter, no symbol
		{"Ab1@", false},            // too short
		{"Abcdefgh1@abcdefgh1@x", false}, // over 20 chars
		{"Pass word@1", true},      // spaces allowed
	}
	for _, tc := range cases {
		errs := validate.Struct(in{Password: tc.password})
		if errs.Any() == tc.ok {
			t.Errorf("password %q: expected ok=%v, got errors: %v", tc.password, tc.ok, errs.Fields())
		}
	}
}

func TestDigitsRule(t *testing.T) {
	type in struct {
		Mobile string `json:"mobile" validate:"required,digits=11"`
	}
	if errs := validate.Struct(in{Mobile: "0300123456"}); !errs.Any() {
		t.Error("expected 10 digits to fail")
	}
	if errs := validate.Struct(in{Mobile: "03001234567"}); errs.Any() {
		t.Errorf("expected 11 digits to pass, got: %v", errs.Fields())
	}
	if errs := validate.Struct(in{Mobile: "0300123456a"}); !errs.Any() {
		t.Error("expected non-digit to fail")
	}
}

func TestRegexWithQuantifierComma(t *testing.T) {
	// The {3,20} quantifier contains a comma; the rule splitter must not
	// cut the pattern there.
	type in struct {
		Name string `json:"name" validate:"required,regex=^[A-Za-z ]{3,20}$,max=50"`
	}
	if errs := validate.Struct(in{Name: "Jo"}); !errs.Any() {
		t.Error("expected 2-char name to fail the pattern")
	}
	if errs := validate.Struct(in{Name: "John Doe"}); errs.Any() {
		t.Errorf("expected valid name to pass, got: %v", errs.Fields())
	}
}

func TestInRule(t *testing.T) {
	type in struct {
		Status string `json:"status" validate:"required,in=pending,shipped,delivered"`
	}
	if errs := validate.Struct(in{Status: "cancelled"}); !errs.Any() {
		t.Error("expected unknown status to fail")
	}
	if errs := validate.Struct(in{Status: "shipped"}); errs.Any() {
		t.Errorf("expected shipped to pass, got: %v", errs.Fields())
	}
}

func TestObjectIDRule(t *testing.T) {
	if !validate.ObjectID("64a1f0c2e4b0a1b2c3d4e5f6") {
		t.Error("expected 24-hex id to be valid")
	}
	if validate.ObjectID("not-an-id") {
		t.Error("expected malformed id to be invalid")
	}
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Website string `json:"website" validate:"nullable,url"`
	}
	if errs := validate.Struct(in{}); errs.Any() {
		t.Errorf("expected empty nullable field to pass, got: %v", errs.Fields())
	}
	if errs := validate.Struct(in{Website: "not a url"}); !errs.Any() {
		t.Error("expected bad url to fail when present")
	}
}
