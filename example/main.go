// Command example prints the ReasonML source flowgen generates for one
// fragment and one query, to stdout, so a reader can see the pipeline
// run end to end without wiring a host build step.
package main

import (
	"fmt"

	"github.com/shyptr/flowgen"
	"github.com/shyptr/flowgen/model"
)

const fragmentSource = `
export type person = {|
  +$refType: person$ref,
  id: string,
  name: string,
  +age: ?number,
|};
`

const querySource = `
export type Identity = "STUDENT" | "TEACHER" | "%future added value";
export type personQueryResponse = {|
  person: {|
    id: string,
    name: string,
    identity: Identity,
  |},
|};
export type personQuery = {|
  variables: personQueryVariables,
  response: personQueryResponse,
|};
export type personQueryVariables = {| id: string |};
`

func main() {
	fragment, err := flowgen.PrintFromFlowTypes(fragmentSource, model.Fragment("person", false), model.PrintConfig{})
	if err != nil {
		panic(err)
	}
	fmt.Println(fragment)

	query, err := flowgen.PrintFromFlowTypes(querySource, model.Query("personQuery"), model.PrintConfig{})
	if err != nil {
		panic(err)
	}
	fmt.Println(query)
}
