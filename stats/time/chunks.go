package time

import "github.com/cwbudde/algo-leveler/dsp/core"

// Chunk summarizes a fixed-size block of a channel.
type Chunk struct {
	Start int64
	Len   int
	// Mean is the average sample magnitude.
	Mean float64
	// AvgDelta is the average magnitude of the difference between
	// consecutive samples within the chunk.
	AvgDelta float64
}

// ChunkStats splits samples into chunks of chunkSize frames (the last one
// may be shorter) and summarizes each.
func ChunkStats(samples []int32, chunkSize int) []Chunk {
	if chunkSize <= 0 || len(samples) == 0 {
		return nil
	}

	chunks := make([]Chunk, 0, (len(samples)+chunkSize-1)/chunkSize)
	for start := 0; start < len(samples); start += chunkSize {
		block := samples[start:min(start+chunkSize, len(samples))]

		var sumAbs, sumDelta int64
		for i, v := range block {
			sumAbs += core.AbsSample(v)
			if i > 0 {
				d := int64(v) - int64(block[i-1])
				if d < 0 {
					d = -d
				}
				sumDelta += d
			}
		}

		c := Chunk{
			Start: int64(start),
			Len:   len(block),
			Mean:  float64(sumAbs) / float64(len(block)),
		}
		if len(block) > 1 {
			c.AvgDelta = float64(sumDelta) / float64(len(block)-1)
		}
		chunks = append(chunks, c)
	}

	return chunks
}
