// Command cstag tags code-switched text with per-token language and named
// entity labels.
//
//	cstag config init            write a sample configuration
//	cstag train                  train and save the character models
//	cstag annotate corpus.txt    write corpus_annotated.txt
//	cstag evaluate gold.tsv      write gold.tsv_outputwithHMM.txt and print accuracy
//	cstag runs                   list recorded evaluation runs
package main
