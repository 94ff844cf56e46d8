package generator

import (
	"fmt"
	"strings"

	"github.com/yourorg/tsclientgen/internal/config"
	"github.com/yourorg/tsclientgen/internal/schema"
	"github.com/yourorg/tsclientgen/internal/synth"
	"github.com/yourorg/tsclientgen/internal/wire"
)

// synthesizeFragment renders one interface's slice of the output module:
// request type, response type, and (unless types-only) the request
// function, plus the hook wrapper when react hooks are enabled.
func synthesizeFragment(itf wire.ExtendedInterface, sc config.Synthetical) (string, error) {
	fnName := sc.Names.FunctionName(itf)
	reqName := sc.Names.RequestTypeName(itf)
	resName := sc.Names.ResponseTypeName(itf)

	reqSchema, err := synth.RequestSchema(itf, sc.CustomTypeMapping)
	if err != nil {
		return "", err
	}
	resFull, err := synth.ResponseSchema(itf, nil, sc.CustomTypeMapping)
	if err != nil {
		return "", err
	}
	binary := synth.IsBinaryResponse(resFull)
	resSchema := schema.UnwrapDataKey(resFull, sc.DataKey...)

	reqDecl, err := synth.Synthesize(reqSchema, reqName, sc.CustomTypeMapping)
	if err != nil {
		return "", err
	}
	resDecl, err := synth.Synthesize(resSchema, resName, sc.CustomTypeMapping)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(interfaceDoc(itf, "request parameters"))
	b.WriteString(reqDecl)
	b.WriteString("\n\n")
	b.WriteString(interfaceDoc(itf, "response data"))
	b.WriteString(resDecl)
	b.WriteString("\n")

	if !sc.TypesOnly {
		b.WriteString("\n")
		b.WriteString(requestFunction(itf, sc, fnName, reqName, resName, binary))
		if sc.ReactHooks.Enabled {
			b.WriteString("\n")
			fmt.Fprintf(&b, "export const use%s = makeRequestHook(%s)\n", capitalize(fnName), fnName)
		}
	}
	return b.String(), nil
}

func interfaceDoc(itf wire.ExtendedInterface, role string) string {
	title := strings.TrimSpace(itf.Title)
	if title == "" {
		return fmt.Sprintf("/**\n * %s of %s %s\n */\n", capitalize(role), strings.ToUpper(itf.Method), itf.Path)
	}
	return fmt.Sprintf("/**\n * %s\n *\n * %s of %s %s\n */\n", title, capitalize(role), strings.ToUpper(itf.Method), itf.Path)
}

func requestFunction(itf wire.ExtendedInterface, sc config.Synthetical, fnName, reqName, resName string, binary bool) string {
	var b strings.Builder
	if binary {
		// File-download endpoints take no request-parameters argument and
		// transfer the body as a binary blob.
		fmt.Fprintf(&b, "export const %s = () =>\n", fnName)
		fmt.Fprintf(&b, "    request<%s>({\n", resName)
	} else {
		fmt.Fprintf(&b, "export const %s = (data: %s) =>\n", fnName, reqName)
		fmt.Fprintf(&b, "    request<%s>({\n", resName)
	}
	fmt.Fprintf(&b, "        method: '%s',\n", strings.ToUpper(itf.Method))
	fmt.Fprintf(&b, "        path: '%s',\n", itf.Path)
	if len(sc.DataKey) > 0 {
		fmt.Fprintf(&b, "        dataKey: [%s],\n", quoteList(sc.DataKey))
	}
	if binary {
		b.WriteString("        responseType: 'blob',\n")
	} else {
		b.WriteString("        data,\n")
	}
	b.WriteString("    })\n")
	return b.String()
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "'" + s + "'"
	}
	return strings.Join(quoted, ", ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
