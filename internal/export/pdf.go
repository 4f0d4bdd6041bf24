/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"stagescript/internal/script"
)

// PDFOptions controls PDF export behavior. Units are points.
// Built-in Helvetica keeps text vector without font embedding.
type PDFOptions struct {
	Author   string
	BodySize float64 // dialogue/direction font size; 0 means 11pt
}

const (
	pdfMargin      = 54 // 0.75in
	titleSize      = 24
	subtitleSize   = 14
	sceneHeadSize  = 15
	lineSpacing    = 1.45
	sectionSpacing = 10
)

// PDF renders the script to a paginated A4 PDF at outPath: a title block,
// then every scene with its heading, dialogue lines with bold character
// names, and italic parentheticals for directions.
func PDF(s *script.Script, outPath string, opt PDFOptions) error {
	title, ok := s.Title()
	if !ok {
		return fmt.Errorf("title: %w", script.ErrMissingField)
	}
	body := opt.BodySize
	if body <= 0 {
		body = 11
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetTitle(title, true)
	if opt.Author != "" {
		pdf.SetAuthor(opt.Author, true)
	}
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	textW := pageW - 2*pdfMargin

	// Title block
	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.MultiCell(textW, titleSize*lineSpacing, title, "", "C", false)
	if subtitle, ok := s.Subtitle(); ok {
		pdf.SetFont("Helvetica", "I", subtitleSize)
		pdf.MultiCell(textW, subtitleSize*lineSpacing, subtitle, "", "C", false)
	}
	pdf.Ln(titleSize)

	for n := 1; n <= s.NumScenes(); n++ {
		sc, err := s.Scene(n)
		if err != nil {
			return err
		}
		pdf.SetFont("Helvetica", "B", sceneHeadSize)
		pdf.MultiCell(textW, sceneHeadSize*lineSpacing, fmt.Sprintf("Scene %d", sc.Number()), "", "L", false)
		pdf.Ln(4)

		for i := 0; i < sc.NumSections(); i++ {
			sec, err := sc.Section(i)
			if err != nil {
				return err
			}
			writeSection(pdf, sec, textW, body)
			pdf.Ln(sectionSpacing)
		}
		pdf.Ln(sectionSpacing)
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func writeSection(pdf *gofpdf.Fpdf, sec script.Section, textW, body float64) {
	switch v := sec.(type) {
	case *script.CharacterLine:
		head := strings.ToUpper(v.Character()) + ":"
		pdf.SetFont("Helvetica", "B", body)
		if d := v.Direction(); d != "" {
			// Keep the parenthetical on the speaker line, matching the
			// Markdown rendering.
			pdf.CellFormat(pdf.GetStringWidth(head)+2, body*lineSpacing, head, "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "I", body)
			pdf.CellFormat(0, body*lineSpacing, "("+d+")", "", 1, "L", false, 0, "")
		} else {
			pdf.CellFormat(0, body*lineSpacing, head, "", 1, "L", false, 0, "")
		}
		pdf.SetFont("Helvetica", "", body)
		pdf.MultiCell(textW, body*lineSpacing, v.Line(), "", "L", false)
	case *script.StageDirection:
		pdf.SetFont("Helvetica", "I", body)
		for _, p := range v.Paragraphs() {
			pdf.MultiCell(textW, body*lineSpacing, "("+p+")", "", "L", false)
			pdf.Ln(2)
		}
	case *script.RawSection:
		// Raw Markdown is emitted as-is; the PDF does not interpret it.
		pdf.SetFont("Helvetica", "", body)
		pdf.MultiCell(textW, body*lineSpacing, v.Text(), "", "L", false)
	}
}
