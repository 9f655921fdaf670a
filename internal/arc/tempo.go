package arc

// TempoForTrack gives the target BPM for track index 1..10.
//
// The curve climbs in 2.5 BPM steps through the first six tracks, jumps to
// the peak on track 7, descends 5 BPM per track and lands on end at track 10.
// Other indices are outside the tuned range.
func TempoForTrack(index int, startBPM, peakBPM, endBPM float64) float64 {
	i := float64(index)
	switch {
	case index <= 2:
		return startBPM + (i-1)*2.5
	case index <= 4:
		return startBPM + 5 + (i-2)*2.5
	case index <= 6:
		return startBPM + 10 + (i-4)*2.5
	case index == 7:
		return peakBPM
	case index <= 9:
		return peakBPM - (i-7)*5
	default:
		return endBPM
	}
}
