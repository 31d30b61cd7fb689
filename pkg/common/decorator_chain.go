package common

// DecoratorChain represents a chain of decorators for methods of S.
type DecoratorChain[S any] []Decorator[S]

// NewDecoratorChain creates a new decorator chain
func NewDecoratorChain[S any](decorators ...Decorator[S]) DecoratorChain[S] {
	return decorators
}

// Append adds decorators to the end of the chain
func (c DecoratorChain[S]) Append(decorators ...Decorator[S]) DecoratorChain[S] {
	return append(c, decorators...)
}

// Prepend adds decorators to the beginning of the chain
func (c DecoratorChain[S]) Prepend(decorators ...Decorator[S]) DecoratorChain[S] {
	result := make(DecoratorChain[S], len(decorators)+len(c))
	copy(result, decorators)
	copy(result[len(decorators):], c)
	return result
}

// Then applies the decorator chain to a method.
// The first decorator in the chain is the outermost one and runs first.
func (c DecoratorChain[S]) Then(m Method[S]) Method[S] {
	for i := len(c) - 1; i >= 0; i-- {
		m = c[i](m)
	}
	return m
}
