package ode

import (
	"go.uber.org/zap"

	"github.com/nimbusvid/odecore/display"
	"github.com/nimbusvid/odecore/meta"
	"github.com/nimbusvid/odecore/registry"
	"github.com/nimbusvid/odecore/schedule"
)

// pairTest is implemented by Distance and Intersection: the pairwise
// predicate an AB trigger applies to every eligible (a,b) pair.
type pairTest interface {
	// test reports whether the pair matches, and the metric value to
	// stamp into PRIMARY_METRIC when it does.
	test(a, b *meta.Object) (bool, float64)
}

// abTrigger is the shared implementation behind Distance and
// Intersection: both partition matching objects into two class-id
// buckets and apply a pairwise test across them.
type abTrigger struct {
	baseTrigger
	classA, classB int
	bucketA        []*meta.Object
	bucketB        []*meta.Object
	pairs          pairTest
}

func newABTrigger(name string, classA, classB int, pt pairTest, counter *EventCounter, resolver registry.Resolver, sched schedule.Scheduler, log *zap.Logger) abTrigger {
	return abTrigger{
		baseTrigger: newBaseTrigger(name, counter, resolver, sched, log),
		classA:      classA,
		classB:      classB,
		pairs:       pt,
	}
}

func (t *abTrigger) preProcess(frame *meta.Frame, sink display.MetaSink) {
	t.baseTrigger.PreProcess(frame, sink)

	t.propMu.Lock()
	t.bucketA = t.bucketA[:0]
	t.bucketB = t.bucketB[:0]
	t.propMu.Unlock()
}

// checkForOccurrence partitions obj into bucket A and/or B by class id,
// without evaluating the pairwise test itself (that happens in
// postProcess once both buckets are complete for the frame).
func (t *abTrigger) checkForOccurrence(frame *meta.Frame, obj *meta.Object) bool {
	if !t.checkForMinCriteria(frame, obj) {
		return false
	}
	if !t.checkForWithin(obj.Rect) {
		return false
	}

	t.propMu.Lock()
	matched := false
	if obj.ClassID == t.classA {
		t.bucketA = append(t.bucketA, obj)
		matched = true
	}
	if t.classB != t.classA && obj.ClassID == t.classB {
		t.bucketB = append(t.bucketB, obj)
		matched = true
	}
	t.propMu.Unlock()
	return matched
}

// postProcess evaluates the pairwise test across the two buckets — i<j
// within A when classA==classB, else the full A×B cross product — firing
// each Action twice per matching pair, once per object, stamped with the
// pair's metric.
func (t *abTrigger) postProcess(frame *meta.Frame) uint {
	if !t.IsEnabled() || !t.checkFrameGate() {
		return 0
	}

	t.propMu.Lock()
	bucketA := append([]*meta.Object(nil), t.bucketA...)
	bucketB := append([]*meta.Object(nil), t.bucketB...)
	sameClass := t.classA == t.classB
	t.propMu.Unlock()

	fired := uint(0)

	fire := func(a, b *meta.Object, metric float64) {
		a.SetMisc(meta.PrimaryMetric, metric)
		b.SetMisc(meta.PrimaryMetric, metric)
		t.fireActions(frame, a)
		t.fireActions(frame, b)
		fired++
	}

	if sameClass {
		for i := 0; i < len(bucketA); i++ {
			for j := i + 1; j < len(bucketA); j++ {
				if ok, metric := t.pairs.test(bucketA[i], bucketA[j]); ok {
					fire(bucketA[i], bucketA[j], metric)
				}
			}
		}
		return fired
	}

	for _, a := range bucketA {
		for _, b := range bucketB {
			if ok, metric := t.pairs.test(a, b); ok {
				fire(a, b, metric)
			}
		}
	}
	return fired
}
