package symbol

// ItName is the implicit variable holding the value of the last bare expression.
const ItName = "IT"

// luaItName is how IT is spelled in translated Lua.
const luaItName = "it"

// defineIt declares the implicit IT variable in a program or function scope.
// IT is never reported as unused.
func defineIt(s *Scope) {
	sym := NewSymbol(ItName, SymIt)
	sym.flags = FlagImplicit | FlagUsed
	s.Define(sym)
}

// collidesWithIt reports whether a variable named name is the same Lua variable as IT.
func collidesWithIt(name string) bool {
	return name == luaItName
}
