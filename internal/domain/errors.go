package domain

import "errors"

// ErrMalformedCorpus means the rule corpus could not be loaded or failed
// validation. It is fatal at startup: nothing can run without valid rules.
var ErrMalformedCorpus = errors.New("malformed corpus")

// ErrRuleNotFound means a rule id was requested that the corpus does not hold.
var ErrRuleNotFound = errors.New("rule not found")
