package timing

// HitKey identifies one routine/call-site combination.
type HitKey struct {
	Name string
	File string
	Line int
}

// HitRecord is the aggregated statistic for one key: how many calls were
// recorded and the wall-clock seconds they consumed in total.
type HitRecord struct {
	Count int
	Total float64
}

// hitTable accumulates records per key. It only grows; Recorder.Reset swaps
// in a fresh table.
type hitTable map[HitKey]HitRecord

func (t hitTable) add(key HitKey, seconds float64) {
	rec := t[key]
	rec.Count++
	rec.Total += seconds
	t[key] = rec
}
