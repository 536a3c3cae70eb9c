package blend

import "github.com/thiccmc/renskin/internal/wide"

// OverBatch is the 16-lane form of Over.
// It reads SR..SA and DR..DA and writes the result into DR..DA.
func OverBatch(b *wide.BatchState) {
	invSA := b.SA.Inv()
	b.DR = b.SR.MulDiv255(b.SA).Add(b.DR.MulDiv255(invSA)).Clamp(255)
	b.DG = b.SG.MulDiv255(b.SA).Add(b.DG.MulDiv255(invSA)).Clamp(255)
	b.DB = b.SB.MulDiv255(b.SA).Add(b.DB.MulDiv255(invSA)).Clamp(255)
	b.DA = b.SA.MulDiv255(b.SA).Add(b.DA.MulDiv255(invSA)).Clamp(255)
}
