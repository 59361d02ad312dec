package main

// defaultMap is flown when no map file is configured.
const defaultMap = `mapName: Dogfight
mapAuthor: xpclient
mapWidth: 48
mapHeight: 32
edgeWrap: yes
mapData: \multiline: EndOfMapdata
                                                
                                                
                    <                           
                                #     #         
      w  r  q                 xxxxxxxxxxx       
      xxxxxxx                 xxxxxxxxxxx       
      xxxxxxx#                     c            
      xxxxxxx                                   
      s     a                                   
                              B                 
    0                   1                       
                                                
                                          !     
                    w  *   q                    
                    xxxxxxxx                    
                    xxxxxxxx                    
                   dxxxxxxxxf                   
                    xxxxxxxx                    
                    xxxxxxxx                    
                    s      a                    
              @                                 
    t    y                                      
    bbbbbb                                      
    bbbbbb                           0 1  2     
    bbbbbb                          xxxxxxxxx   
    bbbbbb                          xxxxxxxxx   
    bbbbbb                          xxxxxxxxx   
                              C                 
          A                                     
                      +                         
                                                
XXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXX
EndOfMapdata
`
