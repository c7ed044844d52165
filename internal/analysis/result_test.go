package analysis

import "testing"

func TestPartialErrors(t *testing.T) {
	result := &Result{
		Deepskin: &DeepskinResult{Success: false, Error: "segmentation failed"},
		Gemini:   &GeminiResult{Success: false, Note: "Check API key and model access"},
	}

	errs := result.PartialErrors()
	if len(errs) != 2 {
		t.Fatalf("expected 2 partial errors, got %d", len(errs))
	}
	if errs[0].Part != "deepskin" || errs[0].Detail != "segmentation failed" {
		t.Errorf("unexpected deepskin partial: %+v", errs[0])
	}
	if errs[1].Part != "narrative" || errs[1].Detail != "Check API key and model access" {
		t.Errorf("unexpected narrative partial: %+v", errs[1])
	}
}

func TestPartialErrors_AbsentSubResultsAreNotFailures(t *testing.T) {
	if errs := (&Result{}).PartialErrors(); len(errs) != 0 {
		t.Errorf("expected no partial errors for absent sub-results, got %d", len(errs))
	}

	result := &Result{
		Deepskin: &DeepskinResult{Success: true, PWATScore: 4},
		Gemini:   &GeminiResult{Success: true, Analysis: "fine"},
	}
	if errs := result.PartialErrors(); len(errs) != 0 {
		t.Errorf("expected no partial errors for successful sub-results, got %d", len(errs))
	}
}

func TestPartialResultError_Message(t *testing.T) {
	withDetail := &PartialResultError{Part: "narrative", Detail: "model offline"}
	if withDetail.Error() != "narrative analysis failed: model offline" {
		t.Errorf("unexpected message: %q", withDetail.Error())
	}

	withoutDetail := &PartialResultError{Part: "deepskin"}
	if withoutDetail.Error() != "deepskin analysis failed" {
		t.Errorf("unexpected message: %q", withoutDetail.Error())
	}
}
