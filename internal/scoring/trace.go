package scoring

// Stage is one named intermediate value of the scoring pipeline.
type Stage struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Trace is the ordered list of intermediate values produced while scoring a
// single task. It is an optional diagnostic output, not part of the scoring
// contract; consumers must not derive behavior from it.
type Trace []Stage

func (tr *Trace) add(name string, value float64) {
	if tr == nil {
		return
	}
	*tr = append(*tr, Stage{Name: name, Value: value})
}

func (tr *Trace) addBool(name string, v bool) {
	if v {
		tr.add(name, 1)
	} else {
		tr.add(name, 0)
	}
}
