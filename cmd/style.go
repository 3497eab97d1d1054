package main

import (
	"github.com/pterm/pterm"

	"github.com/lpiersanti/catena/ledger"
)

func printChain(chain *ledger.Blockchain, asJSON bool) error {
	if asJSON {
		doc, err := chain.Dump()
		if err != nil {
			return err
		}
		pterm.Println(string(doc))
		return nil
	}

	var panels []pterm.Panel
	for _, b := range chain.Blocks() {
		panels = append(panels, getBlockPanel(b))
	}

	pterm.DefaultPanel.WithPanels([][]pterm.Panel{panels}).Render()
	pterm.Info.Printfln("%d blocks at difficulty %d", chain.Len(), chain.Difficulty())
	return nil
}

func getBlockPanel(b ledger.Block) pterm.Panel {
	pbox := pterm.DefaultBox.WithLeftPadding(2).WithRightPadding(2).WithTopPadding(1).WithBottomPadding(1)

	title := pterm.Sprintf("|BLOCK %d|", b.Index)
	if b.Index == 0 {
		title = "|GENESIS|"
	}

	payload := "?"
	if raw, err := b.Data.CanonicalJSON(); err == nil {
		payload = string(raw)
	}

	info := pterm.Sprintf("%s\ndata: %s\nnonce: %d\nprev: %s\nhash: %s",
		b.Timestamp, payload, b.Nonce, shortHash(b.PrevHash), shortHash(b.Hash))
	return pterm.Panel{Data: pbox.WithTitle(pterm.LightYellow(title)).WithTitleTopCenter().Sprint(info)}
}

// shortHash truncates long hashes for display. The sentinel "0" and other
// short values pass through unchanged.
func shortHash(h string) string {
	if len(h) <= 12 {
		return h
	}
	return h[:12] + "..."
}
