// Package topicmodel turns an ordered corpus into topics.
//
// CountVectoriser builds the bag-of-words matrix and LDA fits a latent
// Dirichlet allocation model over it with batch variational Bayes.
// Both are deterministic: the same input and seed always give the same output.
package topicmodel
