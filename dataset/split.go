package dataset

// TemporalSplit partitions a frame into train (year ≤ trainYearMax) and
// validation (valYearMin ≤ year ≤ valYearMax) sets, emulating forecasting on
// unseen future periods. Rows whose year falls in neither window are silently
// excluded from both; that is scope control, not an error.
//
// The two windows are not checked against each other: with
// trainYearMax ≥ valYearMin a row can land in both sets. Keeping the windows
// disjoint is a configuration invariant the caller upholds.
func TemporalSplit(f *Frame, trainYearMax, valYearMin, valYearMax int) (train, val *Frame) {
	yearCol := f.Column(YearColumn)

	var trainIdx, valIdx []int
	for i, v := range yearCol {
		year := int(v)
		if year <= trainYearMax {
			trainIdx = append(trainIdx, i)
		}
		if year >= valYearMin && year <= valYearMax {
			valIdx = append(valIdx, i)
		}
	}
	return f.Select(trainIdx), f.Select(valIdx)
}
