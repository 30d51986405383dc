package ipld

import (
	"io"

	block "github.com/ipfs/go-block-format"
	cid "github.com/ipfs/go-cid"
	ipldcbor "github.com/ipfs/go-ipld-cbor"
	format "github.com/ipfs/go-ipld-format"
	car "github.com/ipld/go-car"
	"github.com/ipld/go-car/util"
	mh "github.com/multiformats/go-multihash"
	"golang.org/x/xerrors"
)

// BlockGetter reads blocks by CID.
type BlockGetter interface {
	Get(c cid.Cid) (block.Block, error)
}

// ExportCAR writes the DAG reachable from root to w as a CAR file with a single root.
// Blocks are written breadth first, each at most once. Identity-hashed CIDs carry their own
// data and are not written.
func ExportCAR(bs BlockGetter, root cid.Cid, w io.Writer) error {
	if err := car.WriteHeader(&car.CarHeader{Roots: []cid.Cid{root}, Version: 1}, w); err != nil {
		return xerrors.Errorf("failed to write car header: %w", err)
	}

	seen := cid.NewSet()
	queue := []cid.Cid{root}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c.Prefix().MhType == mh.IDENTITY || !seen.Visit(c) {
			continue
		}

		blk, err := bs.Get(c)
		if err != nil {
			return xerrors.Errorf("failed to get block %v: %w", c, err)
		}
		if err := util.LdWrite(w, c.Bytes(), blk.RawData()); err != nil {
			return xerrors.Errorf("failed to write block %v: %w", c, err)
		}

		if c.Prefix().Codec != cid.DagCBOR {
			continue
		}
		nd, err := ipldcbor.DecodeBlock(blk)
		if err != nil {
			return xerrors.Errorf("failed to decode block %v: %w", c, err)
		}
		var links []*format.Link = nd.Links()
		for _, l := range links {
			queue = append(queue, l.Cid)
		}
	}
	return nil
}

// LoadCAR reads every block of a CAR file into bs and returns the file's single root.
func LoadCAR(bs car.Store, r io.Reader) (cid.Cid, error) {
	header, err := car.LoadCar(bs, r)
	if err != nil {
		return cid.Undef, xerrors.Errorf("failed to load car: %w", err)
	}
	if len(header.Roots) != 1 {
		return cid.Undef, xerrors.Errorf("expected a single root, found %d", len(header.Roots))
	}
	return header.Roots[0], nil
}
