package euler

import (
	"fmt"

	"github.com/notargets/gomarch/fields"
	"github.com/notargets/gomarch/utils"
)

// Mesh1D is one rank's partition of a uniform interval mesh, cell centered.
type Mesh1D struct {
	XMin, XMax float64      // global extent
	KGlobal    int          // global cell count
	Dx         float64
	KMin, KMax int          // global index range [KMin, KMax) of the local partition
	K          int          // local cell count
	X          utils.Vector // local cell centers
}

func NewMesh1D(xmin, xmax float64, kGlobal int, pm *utils.PartitionMap, rank int) (msh *Mesh1D) {
	if xmax <= xmin {
		panic(fmt.Errorf("invalid extent [%v,%v]", xmin, xmax))
	}
	if kGlobal < 1 {
		panic(fmt.Errorf("invalid cell count %d", kGlobal))
	}
	var (
		kMin, kMax = pm.GetBucketRange(rank)
		dx         = (xmax - xmin) / float64(kGlobal)
	)
	msh = &Mesh1D{
		XMin:    xmin,
		XMax:    xmax,
		KGlobal: kGlobal,
		Dx:      dx,
		KMin:    kMin,
		KMax:    kMax,
		K:       kMax - kMin,
		X:       utils.NewVector(kMax - kMin),
	}
	for i := 0; i < msh.K; i++ {
		msh.X.SetVec(i, xmin+dx*(float64(kMin+i)+0.5))
	}
	return
}

// Nodes returns the local cell center coordinates.
func (msh *Mesh1D) Nodes() fields.Coordinates {
	return fields.Coordinates{msh.X}
}

// GhostCenters returns the centers of the single ghost cell beyond each end
// of the local partition.
func (msh *Mesh1D) GhostCenters() (xLeft, xRight float64) {
	xLeft = msh.X.AtVec(0) - msh.Dx
	xRight = msh.X.AtVec(msh.K-1) + msh.Dx
	return
}
