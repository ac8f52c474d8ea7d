// Package findaid provides an embeddable Go client for parsing EAD finding
// aids and querying the Solr index that serves them.
//
// Parsing works without a search engine:
//
//	client, _ := findaid.New(ctx)
//	aid, _ := client.Parse(ctx, "txu-hrc", "00123.xml", data)
//	fmt.Println(aid.Fields["title"], aid.MultiFields["creators"])
//
// Searching needs a Solr collection:
//
//	client, _ := findaid.New(ctx, findaid.WithSolr("http://localhost:8983/solr", "findingaids"))
//	docs, _ := client.Search().
//	    Text("letters").
//	    Filter("languages", `"Spanish"`).
//	    SortDesc("date_added").
//	    Do(ctx)
package findaid
