package analysis

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestResultBagPreservesInsertionOrder(t *testing.T) {
	bag := NewResultBag()
	bag.Record(StageResult{Name: "primary-detail", Status: StageOK, Payload: json.RawMessage(`{}`)})
	bag.Record(StageResult{Name: "comments", Status: StageFailed, Reason: "rate limited"})
	bag.Record(StageResult{Name: "sound-info", Status: StageSkipped, Reason: "no sound id"})

	want := []string{"primary-detail", "comments", "sound-info"}
	if got := bag.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}
	if bag.Len() != 3 {
		t.Errorf("Len = %d, want 3", bag.Len())
	}
}

func TestResultBagFirstRecordWins(t *testing.T) {
	bag := NewResultBag()
	bag.Record(StageResult{Name: "comments", Status: StageOK, Payload: json.RawMessage(`[1]`)})
	bag.Record(StageResult{Name: "comments", Status: StageFailed, Reason: "late duplicate"})

	res, ok := bag.Get("comments")
	if !ok {
		t.Fatalf("Get missed a recorded stage")
	}
	if res.Status != StageOK {
		t.Errorf("status = %s, want ok (duplicate record overwrote first)", res.Status)
	}
	if bag.Len() != 1 {
		t.Errorf("Len = %d, want 1", bag.Len())
	}
}

func TestResultBagPayloadOnlyForSuccessfulStages(t *testing.T) {
	bag := NewResultBag()
	bag.Record(StageResult{Name: "ok", Status: StageOK, Payload: json.RawMessage(`{"a":1}`)})
	bag.Record(StageResult{Name: "failed", Status: StageFailed, Payload: json.RawMessage(`{"a":1}`), Reason: "boom"})
	bag.Record(StageResult{Name: "skipped", Status: StageSkipped, Reason: "no id"})

	if got := bag.Payload("ok"); string(got) != `{"a":1}` {
		t.Errorf("Payload(ok) = %s", got)
	}
	if got := bag.Payload("failed"); got != nil {
		t.Errorf("Payload(failed) = %s, want nil", got)
	}
	if got := bag.Payload("skipped"); got != nil {
		t.Errorf("Payload(skipped) = %s, want nil", got)
	}
	if got := bag.Payload("absent"); got != nil {
		t.Errorf("Payload(absent) = %s, want nil", got)
	}
}

func TestResultBagJSONRoundTrip(t *testing.T) {
	bag := NewResultBag()
	bag.Record(StageResult{Name: "primary-detail", Status: StageOK, Payload: json.RawMessage(`{"id":"1"}`)})
	bag.Record(StageResult{Name: "comments", Status: StageFailed, Reason: "rate limited"})

	data, err := json.Marshal(bag)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	restored := NewResultBag()
	if err := json.Unmarshal(data, restored); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if !reflect.DeepEqual(restored.Names(), bag.Names()) {
		t.Errorf("order after round trip = %v, want %v", restored.Names(), bag.Names())
	}
	res, _ := restored.Get("comments")
	if res.Status != StageFailed || res.Reason != "rate limited" {
		t.Errorf("restored comments stage = %+v", res)
	}
}

func TestPriorityRankOrdering(t *testing.T) {
	if !(PriorityHigh.Rank() < PriorityMedium.Rank() && PriorityMedium.Rank() < PriorityLow.Rank()) {
		t.Errorf("priority ranks out of order: High=%d Medium=%d Low=%d",
			PriorityHigh.Rank(), PriorityMedium.Rank(), PriorityLow.Rank())
	}
	if unknown := Priority("Urgent").Rank(); unknown <= PriorityLow.Rank() {
		t.Errorf("unknown priority ranks %d, want after Low", unknown)
	}
}

func TestMandatoryStageErrorUnwraps(t *testing.T) {
	cause := errors.New("status 502")
	err := &MandatoryStageError{Stage: "primary-detail", Err: cause}

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is does not find the cause")
	}
	if got := err.Error(); got != `mandatory stage "primary-detail" failed: status 502` {
		t.Errorf("Error() = %q", got)
	}
}
