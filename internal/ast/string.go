package ast

import (
	"fmt"
	"strings"
)

// String methods render a compact source-like form, used by error messages
// and test failure output. They are not a pretty-printer.

func (e *BadExpr) String() string { return "<bad>" }

func (l *Literal) String() string {
	if l.Kind == StringLiteral {
		return fmt.Sprintf("%q", l.Value)
	}
	return l.Value
}

func (n *Name) String() string { return n.Identifier }

func (t *ThisExpr) String() string {
	if t.Label != "" {
		return "this@" + t.Label
	}
	return "this"
}

func (te *TemplateEntry) String() string {
	if te.Value != nil {
		return "${" + te.Value.String() + "}"
	}
	return te.Text
}

func (st *StringTemplate) String() string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, e := range st.Entries {
		sb.WriteString(e.String())
	}
	sb.WriteByte('"')
	return sb.String()
}

func (p *Paren) String() string { return "(" + exprString(p.Inner) + ")" }

func (l *Labeled) String() string { return l.Label + "@ " + exprString(l.Base) }

func (o *OperationRef) String() string { return o.Op }

func (b *Binary) String() string {
	return exprString(b.Left) + " " + b.OpRef.Op + " " + exprString(b.Right)
}

func (u *Unary) String() string {
	if u.Postfix {
		return exprString(u.Base) + u.OpRef.Op
	}
	return u.OpRef.Op + exprString(u.Base)
}

func (a *ArrayAccess) String() string {
	parts := make([]string, len(a.Indices))
	for i, ix := range a.Indices {
		parts[i] = exprString(ix)
	}
	return exprString(a.Array) + "[" + strings.Join(parts, ", ") + "]"
}

func (a *Argument) String() string {
	if a.Name != "" {
		return a.Name + " = " + exprString(a.Value)
	}
	return exprString(a.Value)
}

func (c *Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	s := exprString(c.Callee) + "(" + strings.Join(parts, ", ") + ")"
	if len(c.LambdaArgs) > 0 {
		s += " {...}"
	}
	return s
}

func (q *Qualified) String() string {
	dot := "."
	if q.Safe {
		dot = "?."
	}
	return exprString(q.Receiver) + dot + exprString(q.Selector)
}

func (i *If) String() string {
	s := "if (" + exprString(i.Condition) + ") " + exprString(i.Then)
	if i.Else != nil {
		s += " else " + exprString(i.Else)
	}
	return s
}

func (w *When) String() string {
	if w.Subject != nil {
		return "when (" + exprString(w.Subject) + ") {...}"
	}
	return "when {...}"
}

func (we *WhenEntry) String() string {
	if we.IsElse {
		return "else -> " + exprString(we.Body)
	}
	parts := make([]string, len(we.Conditions))
	for i, c := range we.Conditions {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ") + " -> " + exprString(we.Body)
}

func (wc *WhenConditionInRange) String() string {
	if wc.Not {
		return "!in " + exprString(wc.RangeExpr)
	}
	return "in " + exprString(wc.RangeExpr)
}

func (wc *WhenConditionIsPattern) String() string {
	if wc.Not {
		return "!is " + wc.TypeName
	}
	return "is " + wc.TypeName
}

func (wc *WhenConditionExpression) String() string { return exprString(wc.Value) }

func (t *Try) String() string {
	s := "try {...}"
	for range t.Catches {
		s += " catch {...}"
	}
	if t.Finally != nil {
		s += " finally {...}"
	}
	return s
}

func (c *CatchClause) String() string {
	return "catch (" + c.Parameter.String() + ") {...}"
}

func (f *FinallySection) String() string { return "finally {...}" }

func (w *While) String() string {
	return "while (" + exprString(w.Condition) + ") " + exprString(w.Body)
}

func (d *DoWhile) String() string {
	return "do " + exprString(d.Body) + " while (" + exprString(d.Condition) + ")"
}

func (f *For) String() string {
	param := ""
	if f.Parameter != nil {
		param = f.Parameter.Name
	} else if f.MultiParameter != nil {
		param = f.MultiParameter.String()
	}
	return "for (" + param + " in " + exprString(f.RangeExpr) + ") " + exprString(f.Body)
}

func (b *Break) String() string {
	if b.Label != "" {
		return "break@" + b.Label
	}
	return "break"
}

func (c *Continue) String() string {
	if c.Label != "" {
		return "continue@" + c.Label
	}
	return "continue"
}

func (r *Return) String() string {
	s := "return"
	if r.Label != "" {
		s += "@" + r.Label
	}
	if r.Value != nil {
		s += " " + exprString(r.Value)
	}
	return s
}

func (t *Throw) String() string { return "throw " + exprString(t.Value) }

func (b *Block) String() string {
	if len(b.Statements) == 0 {
		return "{}"
	}
	return "{...}"
}

func (f *FunctionLiteral) String() string { return "{...}" }

func (o *ObjectLiteral) String() string { return "object {...}" }

func (i *IsExpr) String() string {
	op := "is"
	if i.Not {
		op = "!is"
	}
	return exprString(i.Left) + " " + op + " " + i.TypeName
}

func (t *TypeOp) String() string {
	return exprString(t.Left) + " " + t.Op + " " + t.TypeName
}

func (t *TypeRef) String() string { return t.Name }

func (f *Function) String() string { return "fun " + f.Name }

func (p *Parameter) String() string {
	if p.Type != nil {
		return p.Name + ": " + p.Type.Name
	}
	return p.Name
}

func (p *Property) String() string {
	kw := "val"
	if p.Var {
		kw = "var"
	}
	return kw + " " + p.Name
}

func (p *PropertyAccessor) String() string {
	if p.Getter {
		return "get"
	}
	return "set"
}

func (m *MultiDeclaration) String() string {
	parts := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		parts[i] = e.Name
	}
	return "val (" + strings.Join(parts, ", ") + ")"
}

func (m *MultiDeclarationEntry) String() string { return m.Name }

func (c *ClassInitializer) String() string { return "init {...}" }

func (o *ObjectDeclaration) String() string { return "object {...}" }

func (f *File) String() string { return "<file>" }

func exprString(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	return e.String()
}
