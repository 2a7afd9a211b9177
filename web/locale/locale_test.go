package locale

import "testing"

func TestCreateTemplateData(t *testing.T) {
	data := createTemplateData([]string{"name==Amina", "count==3"})
	if data["name"] != "Amina" || data["count"] != "3" {
		t.Errorf("template data = %v", data)
	}
}

func TestCreateTemplateDataSkipsMalformedParams(t *testing.T) {
	data := createTemplateData([]string{"no separator here", "name==Amina"})
	if len(data) != 1 {
		t.Fatalf("malformed param should be skipped, got %v", data)
	}
	if data["name"] != "Amina" {
		t.Errorf("well-formed param lost: %v", data)
	}
}

func TestI18nFallsBackToKey(t *testing.T) {
	LocalizerWeb = nil
	if got := I18n("pages.plans.toasts.created"); got != "pages.plans.toasts.created" {
		t.Errorf("uninitialized localizer returned %q", got)
	}
}
