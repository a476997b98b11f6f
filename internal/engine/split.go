package engine

// splitSameRest partitions an option mapping into options listed in the
// rename table (returned under their target key, values untouched) and
// everything else (returned unchanged). A nil input yields an empty
// "same" and a nil "rest": absent options are not "unhandled options".
func splitSameRest(options map[string]interface{}, sameMap map[string]string) (Params, map[string]interface{}) {
	if options == nil {
		return Params{}, nil
	}

	same := make(Params)
	rest := make(map[string]interface{})
	for key, value := range options {
		if target, ok := sameMap[key]; ok {
			same[target] = value
		} else {
			rest[key] = value
		}
	}
	return same, rest
}
