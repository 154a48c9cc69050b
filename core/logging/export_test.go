package logging

var NewRoot = newRoot
