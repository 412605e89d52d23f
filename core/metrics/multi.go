package metrics

// MultiSink fans out records to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSolve forwards the record to all sinks, returning the first error encountered.
func (m *MultiSink) RecordSolve(ev SolveEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordSolve(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordSeparations forwards the timeline to sinks that support it.
func (m *MultiSink) RecordSeparations(evs []SeparationEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(SeparationRecorder); ok {
			if err := rec.RecordSeparations(evs); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordCoordination forwards the critical event to sinks that support it.
func (m *MultiSink) RecordCoordination(ev CoordinationEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(CoordinationRecorder); ok {
			if err := rec.RecordCoordination(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
