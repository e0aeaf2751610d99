package surrogate

// SelectK exposes the private quickselect to external tests.
var SelectK = selectK
