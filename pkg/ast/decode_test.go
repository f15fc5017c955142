package ast

import (
	"strings"
	"testing"
)

func TestDecodeScript(t *testing.T) {
	const program = `{
	  "body": {
	    "type": "Block",
	    "instrs": [
	      {"type": "LocalVarAssignment", "line": 1, "name": "x", "declaration": true,
	       "expr": {"type": "Literal", "line": 1, "value": 10}},
	      {"type": "Fun", "line": 2, "name": "addOne", "parameters": ["n"],
	       "body": {"type": "Block", "instrs": [
	         {"type": "Return", "line": 3,
	          "expr": {"type": "FunCall", "line": 3,
	           "qualifier": {"type": "LocalVarAccess", "line": 3, "name": "+"},
	           "args": [
	             {"type": "LocalVarAccess", "line": 3, "name": "n"},
	             {"type": "Literal", "line": 3, "value": 1}
	           ]}}
	       ]}},
	      {"type": "FunCall", "line": 5,
	       "qualifier": {"type": "LocalVarAccess", "line": 5, "name": "print"},
	       "args": [
	         {"type": "FunCall", "line": 5,
	          "qualifier": {"type": "LocalVarAccess", "line": 5, "name": "addOne"},
	          "args": [{"type": "LocalVarAccess", "line": 5, "name": "x"}]}
	       ]}
	    ]
	  }
	}`

	script, err := DecodeScript(strings.NewReader(program))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(script.Body.Instrs) != 3 {
		t.Fatalf("expected 3 instructions, got %d", len(script.Body.Instrs))
	}

	decl, ok := script.Body.Instrs[0].(*LocalVarAssignment)
	if !ok || decl.Name != "x" || !decl.Declaration || decl.LineNumber() != 1 {
		t.Fatalf("unexpected first instruction: %#v", script.Body.Instrs[0])
	}
	lit, ok := decl.Expr.(*Literal)
	if !ok {
		t.Fatalf("declaration initializer is %T", decl.Expr)
	}
	if v, ok := lit.Value.(int32); !ok || v != 10 {
		t.Fatalf("literal payload is %#v, want int32 10", lit.Value)
	}

	fun, ok := script.Body.Instrs[1].(*Fun)
	if !ok || fun.Name != "addOne" || len(fun.Parameters) != 1 || fun.Parameters[0] != "n" {
		t.Fatalf("unexpected function node: %#v", script.Body.Instrs[1])
	}
	ret, ok := fun.Body.Instrs[0].(*Return)
	if !ok || ret.LineNumber() != 3 {
		t.Fatalf("unexpected function body: %#v", fun.Body.Instrs[0])
	}

	call, ok := script.Body.Instrs[2].(*FunCall)
	if !ok || call.LineNumber() != 5 || len(call.Args) != 1 {
		t.Fatalf("unexpected call node: %#v", script.Body.Instrs[2])
	}
}

func TestDecodeObjectNodes(t *testing.T) {
	const program = `{
	  "body": {
	    "type": "Block",
	    "instrs": [
	      {"type": "LocalVarAssignment", "line": 1, "name": "o", "declaration": true,
	       "expr": {"type": "New", "line": 1, "initializers": [
	         {"name": "a", "expr": {"type": "Literal", "line": 1, "value": 1}},
	         {"name": "hello", "expr": {"type": "Fun", "line": 1, "parameters": [],
	          "body": {"type": "Block", "instrs": []}}}
	       ]}},
	      {"type": "FieldAssignment", "line": 2, "name": "a",
	       "receiver": {"type": "LocalVarAccess", "line": 2, "name": "o"},
	       "expr": {"type": "Literal", "line": 2, "value": 2}},
	      {"type": "MethodCall", "line": 3, "name": "hello",
	       "receiver": {"type": "LocalVarAccess", "line": 3, "name": "o"},
	       "args": []},
	      {"type": "FieldAccess", "line": 4, "name": "a",
	       "receiver": {"type": "LocalVarAccess", "line": 4, "name": "o"}}
	    ]
	  }
	}`

	script, err := DecodeScript(strings.NewReader(program))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	obj := script.Body.Instrs[0].(*LocalVarAssignment).Expr.(*New)
	if len(obj.Initializers) != 2 || obj.Initializers[0].Name != "a" || obj.Initializers[1].Name != "hello" {
		t.Fatalf("unexpected initializers: %#v", obj.Initializers)
	}
	if _, ok := obj.Initializers[1].Expr.(*Fun); !ok {
		t.Fatalf("second initializer is %T, want *Fun", obj.Initializers[1].Expr)
	}
	if fa := script.Body.Instrs[1].(*FieldAssignment); fa.Name != "a" {
		t.Fatalf("unexpected field assignment: %#v", fa)
	}
	if mc := script.Body.Instrs[2].(*MethodCall); mc.Name != "hello" || len(mc.Args) != 0 {
		t.Fatalf("unexpected method call: %#v", mc)
	}
	if acc := script.Body.Instrs[3].(*FieldAccess); acc.Name != "a" || acc.LineNumber() != 4 {
		t.Fatalf("unexpected field access: %#v", acc)
	}
}

func TestDecodeLiteralKinds(t *testing.T) {
	const program = `{
	  "body": {"type": "Block", "instrs": [
	    {"type": "Literal", "value": -2147483648},
	    {"type": "Literal", "value": "text"},
	    {"type": "Literal", "value": true}
	  ]}
	}`
	script, err := DecodeScript(strings.NewReader(program))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if v := script.Body.Instrs[0].(*Literal).Value.(int32); v != -2147483648 {
		t.Fatalf("unexpected integer payload: %d", v)
	}
	if v := script.Body.Instrs[1].(*Literal).Value.(string); v != "text" {
		t.Fatalf("unexpected string payload: %q", v)
	}
	if v := script.Body.Instrs[2].(*Literal).Value.(bool); !v {
		t.Fatalf("unexpected bool payload")
	}
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name    string
		program string
		wantErr string
	}{
		{
			name:    "missing body",
			program: `{}`,
			wantErr: "missing body",
		},
		{
			name: "unknown node type",
			program: `{"body": {"type": "Block", "instrs": [
			  {"type": "While", "line": 2}
			]}}`,
			wantErr: `unknown node type "While" at line 2`,
		},
		{
			name: "literal overflow",
			program: `{"body": {"type": "Block", "instrs": [
			  {"type": "Literal", "line": 1, "value": 2147483648}
			]}}`,
			wantErr: "overflows int32",
		},
		{
			name: "fractional literal",
			program: `{"body": {"type": "Block", "instrs": [
			  {"type": "Literal", "line": 1, "value": 1.5}
			]}}`,
			wantErr: "not an integer",
		},
		{
			name: "access without name",
			program: `{"body": {"type": "Block", "instrs": [
			  {"type": "LocalVarAccess", "line": 3}
			]}}`,
			wantErr: "missing name",
		},
		{
			name: "call without qualifier",
			program: `{"body": {"type": "Block", "instrs": [
			  {"type": "FunCall", "line": 4, "args": []}
			]}}`,
			wantErr: `missing "qualifier"`,
		},
		{
			name: "if body not a block",
			program: `{"body": {"type": "Block", "instrs": [
			  {"type": "If", "line": 5,
			   "condition": {"type": "Literal", "value": 1},
			   "trueBlock": {"type": "Literal", "value": 1},
			   "falseBlock": {"type": "Block", "instrs": []}}
			]}}`,
			wantErr: "must be a block",
		},
		{
			name: "initializer without name",
			program: `{"body": {"type": "Block", "instrs": [
			  {"type": "New", "line": 6, "initializers": [
			    {"expr": {"type": "Literal", "value": 1}}
			  ]}
			]}}`,
			wantErr: "initializer missing name",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeScript(strings.NewReader(tc.program))
			if err == nil {
				t.Fatalf("expected decode error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not contain %q", err.Error(), tc.wantErr)
			}
		})
	}
}
