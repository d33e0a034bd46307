// Command bomberman plays an encrypted bomberman prototype with four
// parties under the non-interactive multi-party flavor (mhe): player 0 walks the map with 10
// moves, players 1-3 each place one bomb, and the server homomorphically
// checks whether any of player 0's moves lands on any bomb without ever
// learning the moves or the bomb locations in the clear.
package main

import (
	"fmt"
	"math/rand"
	"os"

	boolpkg "github.com/latticefhe/mpctfhe/bool"
	"github.com/latticefhe/mpctfhe/fheuint8"
	"github.com/latticefhe/mpctfhe/internal/prng"
	"github.com/latticefhe/mpctfhe/mhe"
	"github.com/latticefhe/mpctfhe/params"
	"github.com/latticefhe/mpctfhe/rgsw"
)

const numParties = 4
const numMoves = 10

type coord struct {
	x, y uint8
}

type encCoord struct {
	x, y fheuint8.FheUint8
}

func run() error {
	lit, err := params.Default(params.PresetToy)
	if err != nil {
		return err
	}
	p, err := params.NewFromLiteral(lit)
	if err != nil {
		return err
	}
	ctx, err := params.NewContext(p)
	if err != nil {
		return err
	}
	src := prng.NewSource(prng.NewSeed())
	crs := mhe.NewCRS()

	cks := make([]*mhe.ClientKey, numParties)
	for i := range cks {
		cks[i] = mhe.GenClientKey(ctx, src)
	}

	// Every party uploads its one-shot CRS-derived share; the server derives
	// the collective public key, and parties answer with their bootstrap
	// completions against it (clients never talk to each other).
	proto := mhe.NewNonInteractiveProtocol(ctx, crs)
	shares := make([]*mhe.NonInteractiveShare, numParties)
	for i, ck := range cks {
		shares[i] = proto.Gen(ck, i, src)
	}
	pk, err := proto.AggregatePublic(shares)
	if err != nil {
		return err
	}
	completions := make([][]*rgsw.Ciphertext, numParties)
	for i, ck := range cks {
		completions[i] = proto.CompleteShare(ck, pk, src)
	}
	serverKey, err := proto.Finalize(shares, completions)
	if err != nil {
		return err
	}
	boolpkg.InstallServerKey(serverKey)
	ev := fheuint8.NewEvaluator(serverKey.Evaluator)

	encryptByte := func(v uint8) fheuint8.FheUint8 {
		var ct fheuint8.FheUint8
		for bit := 0; bit < 8; bit++ {
			b := (v>>uint(bit))&1 == 1
			ct.Bits[bit] = boolpkg.EncryptPK(ctx.R, pk, p.SigmaRLWE, b, src)
		}
		return ct
	}
	encryptCoord := func(c coord) encCoord {
		return encCoord{x: encryptByte(c.x), y: encryptByte(c.y)}
	}

	// Player 0 plans its moves; players 1-3 place their bombs.
	moves := make([]coord, numMoves)
	for i := range moves {
		moves[i] = coord{x: uint8(rand.Intn(256)), y: uint8(rand.Intn(256))}
	}
	bombs := make([]coord, numParties-1)
	for i := range bombs {
		bombs[i] = coord{x: uint8(rand.Intn(256)), y: uint8(rand.Intn(256))}
	}
	fmt.Printf("player 0 moves: %v\n", moves)
	fmt.Printf("bombs: %v\n", bombs)

	encMoves := make([]encCoord, numMoves)
	for i, m := range moves {
		encMoves[i] = encryptCoord(m)
	}
	encBombs := make([]encCoord, len(bombs))
	for i, b := range bombs {
		encBombs[i] = encryptCoord(b)
	}

	coordEqual := func(a, b encCoord) boolpkg.FheBool {
		return ev.Bool.And(ev.Eq(a.x, b.x), ev.Eq(a.y, b.y))
	}

	dead := coordEqual(encMoves[0], encBombs[0])
	for _, b := range encBombs[1:] {
		dead = ev.Bool.Or(dead, coordEqual(encMoves[0], b))
	}
	for _, m := range encMoves[1:] {
		for _, b := range encBombs {
			dead = ev.Bool.Or(dead, coordEqual(m, b))
		}
	}

	decProto := mhe.NewDecryptionProtocol(ctx.R.Q, p.SigmaLWE)
	decShares := make([]*mhe.DecryptionShare, numParties)
	for i, ck := range cks {
		s, err := ck.GenDecryptionShare(&dead, src)
		if err != nil {
			return err
		}
		decShares[i] = s
	}
	isDead, err := decProto.Aggregate(&dead, decShares)
	if err != nil {
		return err
	}

	if isDead {
		fmt.Println("Oops! Player 0 dead")
	} else {
		fmt.Println("Wohoo! Player 0 survived")
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "bomberman:", err)
		os.Exit(1)
	}
}
