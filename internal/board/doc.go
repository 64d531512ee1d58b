// Package board provides the smack talk message board and its JSON file persistence.
//
// Posts are kept in memory newest first and the whole list is rewritten to a single
// JSON array file after every new post. The file is read once when the board opens;
// a missing or malformed file starts an empty board rather than failing startup.
package board
