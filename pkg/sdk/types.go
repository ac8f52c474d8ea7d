package findaid

import (
	findingaiduc "github.com/kailas-cloud/findaid/internal/usecase/findingaid"
)

// FindingAid is the parsed form of one finding aid.
type FindingAid struct {
	Repository  string
	Filename    string
	Fields      map[string]string   // title, abstract, identifier
	MultiFields map[string][]string // creators, languages, start_dates, ...
	FullText    string
	Tree        map[string]any
	Digital     bool
}

func findingAidFromRecord(rec findingaiduc.Record) FindingAid {
	doc := rec.Document
	return FindingAid{
		Repository:  rec.Repository,
		Filename:    rec.Filename,
		Fields:      doc.Fields(),
		MultiFields: doc.MultiFields(),
		FullText:    doc.FullText(),
		Tree:        map[string]any(doc.Tree()),
		Digital:     doc.Digital(),
	}
}
