package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "duplicate root registration",
			code:    "N001",
			wantMsg: "Root router registered more than once",
			wantCat: CategoryConfig,
		},
		{
			name:    "location ready failure",
			code:    "N020",
			wantMsg: "Location subsystem failed to become ready",
			wantCat: CategoryBootstrap,
		},
		{
			name:    "no matching route",
			code:    "N040",
			wantMsg: "No route matches the requested URL",
			wantCat: CategoryNavigation,
		},
		{
			name:    "unknown error code",
			code:    "N999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	err := New("N001")
	got := err.Error()
	if !strings.HasPrefix(got, "N001: ") {
		t.Errorf("Error() = %q, want prefix %q", got, "N001: ")
	}

	noCode := Newf(CategoryNavigation, "boom at %s", "/users")
	if noCode.Error() != "boom at /users" {
		t.Errorf("Error() = %q, want %q", noCode.Error(), "boom at /users")
	}
}

func TestUnwrap(t *testing.T) {
	inner := stderrors.New("disk on fire")
	err := New("N060").Wrap(inner)

	if !stderrors.Is(err, inner) {
		t.Error("errors.Is should find the wrapped error")
	}

	var ne *NavkitError
	if !stderrors.As(err, &ne) {
		t.Fatal("errors.As should find *NavkitError")
	}
	if ne.Code != "N060" {
		t.Errorf("Code = %q, want %q", ne.Code, "N060")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "N060") != nil {
		t.Error("FromError(nil) should return nil")
	}

	orig := New("N001")
	if got := FromError(orig, "N060"); got != orig {
		t.Error("FromError should pass through an existing NavkitError")
	}

	wrapped := FromError(stderrors.New("nope"), "N060")
	if wrapped.Code != "N060" {
		t.Errorf("Code = %q, want %q", wrapped.Code, "N060")
	}
	if wrapped.Wrapped == nil {
		t.Error("expected wrapped error to be retained")
	}
}

func TestWithMessagef(t *testing.T) {
	err := New("N040").WithMessagef("no route matches %q", "/missing")
	if err.Message != `no route matches "/missing"` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Detail == "" {
		t.Error("expected original message preserved as detail")
	}
}

func TestFormatPlain(t *testing.T) {
	DisableColors()
	defer EnableColors()

	out := New("N001").
		WithSuggestion("use RegisterChild in feature modules").
		WithExample("reg.RegisterChild(adminRoutes)").
		Format()

	for _, want := range []string{
		"N001",
		"[config]",
		"Root router registered more than once",
		"hint: use RegisterChild in feature modules",
		"reg.RegisterChild(adminRoutes)",
		"https://navkit.dev/docs/errors/N001",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}
