package builtins

// Prelude is Scheme source evaluated once against a fresh environment at
// bootstrap, after the native registry has been installed. It exists
// because map and for-each need to invoke an arbitrary, possibly
// user-defined procedure over one or more lists — something only the
// evaluator's own apply machinery can do. A native Go function only ever
// sees (Arena, env, args); it has no way to drive the trampoline that
// actually calls a procedure. Writing map/for-each in Scheme, in terms of
// the already-privileged `apply`, sidesteps that entirely: this is the same
// trick R5RS itself uses in appendix-style sample implementations of its
// own library procedures.
const Prelude = `
(define (%map-heads lists)
  (if (null? lists) '() (cons (car (car lists)) (%map-heads (cdr lists)))))

(define (%map-tails lists)
  (if (null? lists) '() (cons (cdr (car lists)) (%map-tails (cdr lists)))))

(define (map proc . lists)
  (let loop ((lists lists))
    (if (null? (car lists))
        '()
        (cons (apply proc (%map-heads lists))
              (loop (%map-tails lists))))))

(define (for-each proc . lists)
  (let loop ((lists lists))
    (if (null? (car lists))
        (if #f #f)
        (begin
          (apply proc (%map-heads lists))
          (loop (%map-tails lists))))))
`
