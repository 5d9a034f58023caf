// SPDX-License-Identifier: EPL-2.0

package feature

// Tensor is a row-major [Batch, Mels, Frames] array of log-mel features.
type Tensor struct {
	Batch  int
	Mels   int
	Frames int
	Data   []float32
}

func newTensor(batch, mels, frames int) *Tensor {
	return &Tensor{
		Batch:  batch,
		Mels:   mels,
		Frames: frames,
		Data:   make([]float32, batch*mels*frames),
	}
}

func (t *Tensor) Shape() []int { return []int{t.Batch, t.Mels, t.Frames} }

func (t *Tensor) At(b, m, f int) float32 {
	return t.Data[(b*t.Mels+m)*t.Frames+f]
}

// Item is utterance b as a [Mels, Frames] view into Data.
func (t *Tensor) Item(b int) []float32 {
	n := t.Mels * t.Frames
	return t.Data[b*n : (b+1)*n]
}
