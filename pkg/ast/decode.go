package ast

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// DecodeScript reads the JSON form of an already-parsed program tree. The
// producer is the parser collaborator; shapes match the json tags on the
// node structs, with a top-level {"body": <Block>}.
func DecodeScript(r io.Reader) (*Script, error) {
	var raw struct {
		Body map[string]any `json:"body"`
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	if raw.Body == nil {
		return nil, fmt.Errorf("script missing body block")
	}
	body, err := decodeBlock(raw.Body)
	if err != nil {
		return nil, err
	}
	return NewScript(body), nil
}

func decodeNode(node map[string]any) (Expr, error) {
	typ, _ := node["type"].(string)
	line := decodeLine(node)
	switch NodeType(typ) {
	case NodeBlock:
		return decodeBlock(node)
	case NodeLiteral:
		value, err := decodeLiteralValue(node["value"])
		if err != nil {
			return nil, fmt.Errorf("literal at line %d: %w", line, err)
		}
		return NewLiteral(value, line), nil
	case NodeLocalVarAccess:
		name, err := decodeName(node)
		if err != nil {
			return nil, err
		}
		return NewLocalVarAccess(name, line), nil
	case NodeLocalVarAssignment:
		name, err := decodeName(node)
		if err != nil {
			return nil, err
		}
		expr, err := decodeChild(node, "expr")
		if err != nil {
			return nil, err
		}
		declaration, _ := node["declaration"].(bool)
		return NewLocalVarAssignment(name, expr, declaration, line), nil
	case NodeFun:
		name, _ := node["name"].(string)
		paramsRaw, _ := node["parameters"].([]any)
		parameters := make([]string, 0, len(paramsRaw))
		for _, raw := range paramsRaw {
			param, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("fun at line %d: parameter %v is not a string", line, raw)
			}
			parameters = append(parameters, param)
		}
		body, err := decodeChildBlock(node, "body")
		if err != nil {
			return nil, err
		}
		return NewFun(name, parameters, body, line), nil
	case NodeFunCall:
		qualifier, err := decodeChild(node, "qualifier")
		if err != nil {
			return nil, err
		}
		args, err := decodeChildList(node, "args")
		if err != nil {
			return nil, err
		}
		return NewFunCall(qualifier, args, line), nil
	case NodeReturn:
		expr, err := decodeChild(node, "expr")
		if err != nil {
			return nil, err
		}
		return NewReturn(expr, line), nil
	case NodeIf:
		condition, err := decodeChild(node, "condition")
		if err != nil {
			return nil, err
		}
		trueBlock, err := decodeChildBlock(node, "trueBlock")
		if err != nil {
			return nil, err
		}
		falseBlock, err := decodeChildBlock(node, "falseBlock")
		if err != nil {
			return nil, err
		}
		return NewIf(condition, trueBlock, falseBlock, line), nil
	case NodeNew:
		initsRaw, _ := node["initializers"].([]any)
		initializers := make([]FieldInitializer, 0, len(initsRaw))
		for _, raw := range initsRaw {
			entry, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("new at line %d: invalid initializer %T", line, raw)
			}
			name, _ := entry["name"].(string)
			if name == "" {
				return nil, fmt.Errorf("new at line %d: initializer missing name", line)
			}
			expr, err := decodeChild(entry, "expr")
			if err != nil {
				return nil, err
			}
			initializers = append(initializers, FieldInitializer{Name: name, Expr: expr})
		}
		return NewNew(initializers, line), nil
	case NodeFieldAccess:
		receiver, err := decodeChild(node, "receiver")
		if err != nil {
			return nil, err
		}
		name, err := decodeName(node)
		if err != nil {
			return nil, err
		}
		return NewFieldAccess(receiver, name, line), nil
	case NodeFieldAssignment:
		receiver, err := decodeChild(node, "receiver")
		if err != nil {
			return nil, err
		}
		name, err := decodeName(node)
		if err != nil {
			return nil, err
		}
		expr, err := decodeChild(node, "expr")
		if err != nil {
			return nil, err
		}
		return NewFieldAssignment(receiver, name, expr, line), nil
	case NodeMethodCall:
		receiver, err := decodeChild(node, "receiver")
		if err != nil {
			return nil, err
		}
		name, err := decodeName(node)
		if err != nil {
			return nil, err
		}
		args, err := decodeChildList(node, "args")
		if err != nil {
			return nil, err
		}
		return NewMethodCall(receiver, name, args, line), nil
	default:
		return nil, fmt.Errorf("unknown node type %q at line %d", typ, line)
	}
}

func decodeBlock(node map[string]any) (*Block, error) {
	line := decodeLine(node)
	instrsRaw, _ := node["instrs"].([]any)
	instrs := make([]Expr, 0, len(instrsRaw))
	for _, raw := range instrsRaw {
		child, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("block at line %d: invalid instruction %T", line, raw)
		}
		expr, err := decodeNode(child)
		if err != nil {
			return nil, err
		}
		instrs = append(instrs, expr)
	}
	return NewBlock(instrs, line), nil
}

func decodeChild(node map[string]any, key string) (Expr, error) {
	child, ok := node[key].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s node at line %d missing %q", node["type"], decodeLine(node), key)
	}
	return decodeNode(child)
}

func decodeChildBlock(node map[string]any, key string) (*Block, error) {
	expr, err := decodeChild(node, key)
	if err != nil {
		return nil, err
	}
	block, ok := expr.(*Block)
	if !ok {
		return nil, fmt.Errorf("%s node at line %d: %q must be a block, got %s", node["type"], decodeLine(node), key, expr.NodeType())
	}
	return block, nil
}

func decodeChildList(node map[string]any, key string) ([]Expr, error) {
	rawList, _ := node[key].([]any)
	exprs := make([]Expr, 0, len(rawList))
	for _, raw := range rawList {
		child, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s node at line %d: invalid %q entry %T", node["type"], decodeLine(node), key, raw)
		}
		expr, err := decodeNode(child)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

func decodeName(node map[string]any) (string, error) {
	name, _ := node["name"].(string)
	if name == "" {
		return "", fmt.Errorf("%s node at line %d missing name", node["type"], decodeLine(node))
	}
	return name, nil
}

func decodeLine(node map[string]any) int {
	switch v := node["line"].(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0
		}
		return int(n)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func decodeLiteralValue(raw any) (any, error) {
	switch v := raw.(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return nil, fmt.Errorf("value %v is not an integer", v)
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return nil, fmt.Errorf("value %d overflows int32", n)
		}
		return int32(n), nil
	case string:
		return v, nil
	case bool:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported literal value %T", raw)
	}
}
